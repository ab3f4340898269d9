package service

import (
	"testing"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/internal/portal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// testClock is a deterministic clock for services that stamp records.
var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}
