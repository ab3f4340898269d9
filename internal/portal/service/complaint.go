package service

import (
	"context"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/idx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

const complaintIDLayout = "20060102150405"

// ComplaintCreate is the input for submitting a complaint.
type ComplaintCreate struct {
	Category    string
	Subject     string
	Description string
}

// ComplaintService owns the complaint lifecycle. Creation always starts at
// status New; the statuses an admin may move a complaint to afterwards are
// an open set stored verbatim.
type ComplaintService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ComplaintService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create submits a complaint on behalf of userID. The public id is derived
// from the creation instant (CPL-<YYYYMMDDHHMMSS>); two submissions within
// the same second collide on the id's unique index and the second one
// surfaces the store error.
func (s *ComplaintService) Create(ctx context.Context, userID string, in ComplaintCreate) (domain.Complaint, error) {
	now := s.now().UTC()

	complaint := domain.Complaint{
		ID:          idx.New().String(),
		PublicID:    "CPL-" + now.Format(complaintIDLayout),
		UserID:      userID,
		Category:    in.Category,
		Subject:     in.Subject,
		Description: in.Description,
		Status:      domain.ComplaintStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Complaints().CreateComplaint(ctx, complaint); err != nil {
		return domain.Complaint{}, err
	}

	slogx.FromContext(ctx).Info("complaint submitted",
		"complaint_id", complaint.PublicID, "category", complaint.Category)
	return complaint, nil
}

// ListFor returns the complaints visible to the caller: admins see all,
// everyone else sees only their own.
func (s *ComplaintService) ListFor(ctx context.Context, caller domain.User) ([]domain.Complaint, error) {
	if caller.Role == domain.RoleAdmin {
		return s.Store.Complaints().ListComplaints(ctx)
	}
	return s.Store.Complaints().ListComplaintsByUser(ctx, caller.ID)
}

// UpdateStatus stores the admin-supplied status verbatim and refreshes the
// updated_at timestamp.
func (s *ComplaintService) UpdateStatus(ctx context.Context, publicID, status string) error {
	err := s.Store.Complaints().UpdateComplaintStatus(ctx, publicID, status, s.now().UTC())
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("complaint status updated",
		"complaint_id", publicID, "status", status)
	return nil
}
