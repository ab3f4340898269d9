package service

import (
	"context"
	"testing"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CertificateService{Store: st, Now: testClock}

	t.Run("numbers are sequential within the issue year", func(t *testing.T) {
		first, err := svc.Issue(ctx, CertificateIssue{
			FarmerName: "Ahmed Ben Salem",
			FarmName:   "Green Valley Farm",
			Level:      "Gold",
			ValidUntil: "2026-01-01",
		})
		require.NoError(t, err)
		require.Equal(t, "CERT-2025-001", first.Number)
		require.Equal(t, domain.CertificateStatusActive, first.Status)
		require.Equal(t, "2025-06-01", first.IssuedDate)

		second, err := svc.Issue(ctx, CertificateIssue{
			FarmerName: "Fatima Khelifi",
			FarmName:   "Sunrise Orchards",
			Level:      "Silver",
			ValidUntil: "2026-01-01",
		})
		require.NoError(t, err)
		require.Equal(t, "CERT-2025-002", second.Number)
	})

	t.Run("malformed valid_until is rejected", func(t *testing.T) {
		_, err := svc.Issue(ctx, CertificateIssue{
			FarmerName: "A", FarmName: "B", Level: "Gold",
			ValidUntil: "01/01/2026",
		})
		require.ErrorIs(t, err, ErrInvalidValidUntil)
	})

	t.Run("valid_until must be after the issue date", func(t *testing.T) {
		_, err := svc.Issue(ctx, CertificateIssue{
			FarmerName: "A", FarmName: "B", Level: "Gold",
			ValidUntil: "2025-06-01",
		})
		require.ErrorIs(t, err, ErrInvalidValidUntil)
	})
}

func TestRevokeCertificate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CertificateService{Store: st, Now: testClock}

	cert, err := svc.Issue(ctx, CertificateIssue{
		FarmerName: "Ahmed Ben Salem",
		FarmName:   "Green Valley Farm",
		Level:      "Gold",
		ValidUntil: "2026-01-01",
	})
	require.NoError(t, err)

	t.Run("revocation is one-way and idempotent", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, cert.Number))

		got, err := svc.GetByNumber(ctx, cert.Number)
		require.NoError(t, err)
		require.Equal(t, domain.CertificateStatusRevoked, got.Status)

		// Second revocation still succeeds
		require.NoError(t, svc.Revoke(ctx, cert.Number))
	})

	t.Run("revoked certificates drop out of the active listing", func(t *testing.T) {
		active, err := svc.ListActive(ctx)
		require.NoError(t, err)
		for _, c := range active {
			require.NotEqual(t, cert.Number, c.Number)
		}
	})

	t.Run("unknown number is not found", func(t *testing.T) {
		err := svc.Revoke(ctx, "CERT-2025-999")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
