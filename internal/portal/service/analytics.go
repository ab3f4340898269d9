package service

import (
	"context"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
)

// AnalyticsService computes the admin rollup fresh on every call. Scale is
// small and freshness matters more than latency, so nothing is cached.
type AnalyticsService struct {
	Store store.Store
}

// Stats returns the current counts across the record stores.
func (s *AnalyticsService) Stats(ctx context.Context) (domain.Stats, error) {
	activeCerts, err := s.Store.Certificates().CountByStatus(ctx, domain.CertificateStatusActive)
	if err != nil {
		return domain.Stats{}, err
	}

	workers, err := s.Store.Users().CountByRole(ctx, domain.RoleWorker)
	if err != nil {
		return domain.Stats{}, err
	}

	pending, err := s.Store.Complaints().CountByStatuses(ctx,
		[]string{domain.ComplaintStatusNew, domain.ComplaintStatusInReview})
	if err != nil {
		return domain.Stats{}, err
	}

	byCategory, err := s.Store.Complaints().CountByCategory(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	return domain.Stats{
		ActiveCertificates:   activeCerts,
		TotalWorkers:         workers,
		PendingComplaints:    pending,
		ComplaintsByCategory: byCategory,
	}, nil
}
