package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(username string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "argon2id-hash",
		Role:         domain.RoleWorker,
		FullName:     "Test User",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestErrorMapping(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Certificates().GetCertificateByNumber(ctx, "CERT-2025-999")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violations map to ErrAlreadyExists", func(t *testing.T) {
		user := testUser("dup")
		require.NoError(t, st.Users().CreateUser(ctx, user))

		clone := testUser("dup")
		err := st.Users().CreateUser(ctx, clone)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, testUser("ghost")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTimestampRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	user := testUser("stamped")
	require.NoError(t, st.Users().CreateUser(ctx, user))

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.CreatedAt.Equal(user.CreatedAt), "got %v want %v", got.CreatedAt, user.CreatedAt)
}
