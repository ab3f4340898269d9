package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/internal/portal/store/drivers/sqlite"
	"github.com/agriwatch/farmportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := jwtx.NewHS256(jwtx.Config{
		Secret: []byte("test-secret"),
		Issuer: "farm-portal-test",
		Now:    testClock,
	})
	require.NoError(t, err)

	seed := &service.SeedService{Store: st, Now: testClock}
	require.NoError(t, seed.Seed(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(tokens, "test", st, logger)
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens, Now: testClock}
	r.CertificateService = &service.CertificateService{Store: st, Now: testClock}
	r.ComplaintService = &service.ComplaintService{Store: st, Now: testClock}
	r.RatingService = &service.RatingService{Store: st, Now: testClock}
	r.AnalyticsService = &service.AnalyticsService{Store: st}
	r.FaceService = &service.FaceService{
		Store:   st,
		Matcher: service.UnimplementedMatcher{},
		Tokens:  tokens,
		Now:     testClock,
	}
	r.ApplyRoutes()

	return r, st
}

var nextAddr int

// do executes a request against the router. Each request gets its own
// source IP so the per-IP rate limits never interfere across cases.
func do(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	nextAddr++
	req.RemoteAddr = fmt.Sprintf("10.0.%d.%d:4000", nextAddr/250, nextAddr%250+1)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r *Router, username, password string) string {
	t.Helper()

	rec := do(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "bearer", result.TokenType)
	return result.AccessToken
}

func errDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var e struct {
		StatusCode int    `json:"status_code"`
		Detail     string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	require.Equal(t, rec.Code, e.StatusCode)
	return e.Detail
}

func TestWorkerComplaintFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	token := login(t, r, "worker1", "worker123")

	rec := do(t, r, http.MethodPost, "/complaints", token, map[string]string{
		"category":    "Transportation",
		"subject":     "X",
		"description": "Y",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ComplaintID string `json:"complaint_id"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Regexp(t, `^CPL-\d{14}$`, created.ComplaintID)

	rec = do(t, r, http.MethodGet, "/complaints", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ComplaintID string `json:"complaint_id"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))

	// The seeded complaint belongs to worker1 too, so two rows: the
	// fresh one must be present with status New.
	var found bool
	for _, c := range list {
		if c.ComplaintID == created.ComplaintID {
			found = true
			require.Equal(t, "New", c.Status)
		}
	}
	require.True(t, found)
}

func TestAdminCertificateFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	admin := login(t, r, "admin", "admin123")

	rec := do(t, r, http.MethodPost, "/certificates", admin, map[string]string{
		"farmer_name": "A",
		"farm_name":   "B",
		"level":       "Gold",
		"valid_until": "2026-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var issued struct {
		CertNumber string `json:"cert_number"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	require.Regexp(t, `^CERT-2025-\d{3}$`, issued.CertNumber)

	// Public lookup, no token
	rec = do(t, r, http.MethodGet, "/certificates/"+issued.CertNumber, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cert struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cert))
	require.Equal(t, "Active", cert.Status)

	// Revoke, then the record stays reachable with the new status
	rec = do(t, r, http.MethodDelete, "/certificates/"+issued.CertNumber, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/certificates/"+issued.CertNumber, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cert))
	require.Equal(t, "Revoked", cert.Status)
}

func TestAuthFailures(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("bad credentials", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "worker1",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Incorrect username or password", errDetail(t, rec))
	})

	t.Run("missing token", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/complaints", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/complaints", "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		worker := login(t, r, "worker1", "worker123")

		rec := do(t, r, http.MethodPost, "/certificates", worker, map[string]string{
			"farmer_name": "A", "farm_name": "B", "level": "Gold", "valid_until": "2026-01-01",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "Admin access required", errDetail(t, rec))

		rec = do(t, r, http.MethodGet, "/analytics/stats", worker, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown certificate is 404 without authentication", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/certificates/CERT-1999-000", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Certificate not found", errDetail(t, rec))
	})
}

func TestMe(t *testing.T) {
	r, _ := newTestRouter(t)

	token := login(t, r, "farmer1", "farmer123")

	rec := do(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		FullName string `json:"full_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "farmer1", me.Username)
	require.Equal(t, "farmer", me.Role)
}

func TestRatingsEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	farmer, err := st.Users().GetUserByUsername(context.Background(), "farmer1")
	require.NoError(t, err)

	worker := login(t, r, "worker1", "worker123")

	t.Run("worker submits a rating", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/ratings", worker, map[string]any{
			"farmer_id":         farmer.ID,
			"transport_rating":  5,
			"conditions_rating": 3,
			"equipment_rating":  4,
			"wages_rating":      4,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("farmers cannot rate", func(t *testing.T) {
		farmerToken := login(t, r, "farmer1", "farmer123")

		rec := do(t, r, http.MethodPost, "/ratings", farmerToken, map[string]any{
			"farmer_id": farmer.ID, "transport_rating": 5,
			"conditions_rating": 5, "equipment_rating": 5, "wages_rating": 5,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "Only workers can submit ratings", errDetail(t, rec))
	})

	t.Run("out-of-range score is a validation error", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/ratings", worker, map[string]any{
			"farmer_id": farmer.ID, "transport_rating": 9,
			"conditions_rating": 3, "equipment_rating": 3, "wages_rating": 3,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("aggregate is public", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/ratings/farmer/"+farmer.ID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var summary struct {
			AvgTransport *float64 `json:"avg_transport"`
			TotalRatings int64    `json:"total_ratings"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		require.EqualValues(t, 1, summary.TotalRatings)
		require.NotNil(t, summary.AvgTransport)
		require.InDelta(t, 5.0, *summary.AvgTransport, 0.001)
	})

	t.Run("unrated farmer serializes null averages", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/ratings/farmer/none", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"avg_transport":null`)
	})
}

func TestAnalyticsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	admin := login(t, r, "admin", "admin123")

	rec := do(t, r, http.MethodGet, "/analytics/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		ActiveCertificates int64 `json:"active_certificates"`
		TotalWorkers       int64 `json:"total_workers"`
		PendingComplaints  int64 `json:"pending_complaints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.EqualValues(t, 2, stats.ActiveCertificates)
	require.EqualValues(t, 1, stats.TotalWorkers)
	require.EqualValues(t, 1, stats.PendingComplaints)
}

func TestComplaintTriage(t *testing.T) {
	r, _ := newTestRouter(t)

	admin := login(t, r, "admin", "admin123")

	rec := do(t, r, http.MethodPatch, "/complaints/CPL-001", admin, map[string]string{
		"status": "In Review",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodPatch, "/complaints/CPL-404", admin, map[string]string{
		"status": "In Review",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Complaint not found", errDetail(t, rec))

	t.Run("admin sees every complaint", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/complaints", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
	})
}

func TestFaceEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("verify never matches with the placeholder matcher", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/face/verify", "", map[string]string{
			"face_data": "payload",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "No matching face found", errDetail(t, rec))
	})

	t.Run("register and list", func(t *testing.T) {
		worker := login(t, r, "worker1", "worker123")
		rec := do(t, r, http.MethodPost, "/face/register", worker, map[string]string{
			"face_data": "opaque-encoding",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		t.Run("listing is admin only", func(t *testing.T) {
			rec := do(t, r, http.MethodGet, "/face/users", worker, nil)
			require.Equal(t, http.StatusForbidden, rec.Code)
		})

		admin := login(t, r, "admin", "admin123")
		rec = do(t, r, http.MethodGet, "/face/users", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var users []struct {
			Username  string `json:"username"`
			FaceCount int64  `json:"face_count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))

		counts := make(map[string]int64, len(users))
		for _, u := range users {
			counts[u.Username] = u.FaceCount
		}
		require.EqualValues(t, 1, counts["worker1"])
	})
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = do(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}
