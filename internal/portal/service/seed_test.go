package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seed := &SeedService{Store: st, Now: testClock}
	require.NoError(t, seed.Seed(ctx))

	auth := &AuthService{Store: st, Tokens: newTestTokens(t), Now: testClock}

	t.Run("demo accounts can log in", func(t *testing.T) {
		for _, cred := range []struct{ username, password, role string }{
			{"admin", "admin123", "admin"},
			{"worker1", "worker123", "worker"},
			{"farmer1", "farmer123", "farmer"},
		} {
			result, err := auth.Login(ctx, cred.username, cred.password)
			require.NoError(t, err, cred.username)
			require.Equal(t, cred.role, result.Role)
		}
	})

	t.Run("demo records exist", func(t *testing.T) {
		cert, err := st.Certificates().GetCertificateByNumber(ctx, "CERT-2025-001")
		require.NoError(t, err)
		require.NotNil(t, cert.OwnerUserID)

		complaint, err := st.Complaints().GetComplaintByPublicID(ctx, "CPL-001")
		require.NoError(t, err)
		require.Equal(t, "Transportation", complaint.Category)
	})

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		require.NoError(t, seed.Seed(ctx))

		all, err := st.Complaints().ListComplaints(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}
