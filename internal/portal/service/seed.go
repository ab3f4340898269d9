package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/cryptox"
	"github.com/agriwatch/farmportal/pkg/idx"
)

// SeedService populates a fresh database with the demo fixtures: one user
// per role, two certificates, one complaint. Runs once; a non-empty users
// table makes it a no-op.
type SeedService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *SeedService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Seed inserts the demo data when the store is empty.
func (s *SeedService) Seed(ctx context.Context) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !empty {
		return nil
	}

	now := s.now().UTC()

	users := []struct {
		username string
		password string
		role     domain.Role
		fullName string
	}{
		{"admin", "admin123", domain.RoleAdmin, "Admin User"},
		{"worker1", "worker123", domain.RoleWorker, "John Worker"},
		{"farmer1", "farmer123", domain.RoleFarmer, "Ahmed Ben Salem"},
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		hash, err := cryptox.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		user := domain.User{
			ID:           idx.New().String(),
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			FullName:     u.fullName,
			CreatedAt:    now,
		}
		if err := s.Store.Users().CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
		ids[u.username] = user.ID
	}

	farmerID := ids["farmer1"]
	certs := []domain.Certificate{
		{
			ID:          idx.New().String(),
			Number:      "CERT-2025-001",
			FarmerName:  "Ahmed Ben Salem",
			FarmName:    "Green Valley Farm",
			Level:       "Gold",
			Status:      domain.CertificateStatusActive,
			IssuedDate:  "2025-01-01",
			ValidUntil:  "2025-12-31",
			OwnerUserID: &farmerID,
			CreatedAt:   now,
		},
		{
			ID:         idx.New().String(),
			Number:     "CERT-2025-002",
			FarmerName: "Fatima Khelifi",
			FarmName:   "Sunrise Orchards",
			Level:      "Gold",
			Status:     domain.CertificateStatusActive,
			IssuedDate: "2025-01-05",
			ValidUntil: "2025-12-31",
			CreatedAt:  now,
		},
	}
	for _, c := range certs {
		if err := s.Store.Certificates().CreateCertificate(ctx, c); err != nil {
			return fmt.Errorf("seed certificate %s: %w", c.Number, err)
		}
	}

	classification := "Safety Risk - High Priority"
	complaint := domain.Complaint{
		ID:               idx.New().String(),
		PublicID:         "CPL-001",
		UserID:           ids["worker1"],
		Category:         "Transportation",
		Subject:          "Vehicle Overcrowding",
		Description:      "Too many workers in one vehicle",
		Status:           domain.ComplaintStatusNew,
		AIClassification: &classification,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Store.Complaints().CreateComplaint(ctx, complaint); err != nil {
		return fmt.Errorf("seed complaint: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("seeded demo data", "users", len(users), "certificates", len(certs))
	}
	return nil
}
