package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/httpx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

type ctxKey struct{}

// requireUser runs after httpx.AuthnMiddleware: it re-fetches the caller
// from the credential store so tokens minted for since-deleted accounts are
// rejected, and injects the full user record for downstream handlers.
func requireUser(st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			user, err := st.Users().GetUserByID(ctx, userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					httpx.WriteError(w, http.StatusUnauthorized, "User not found")
					return
				}
				slogx.FromContext(ctx).Error("load user failed", "user_id", userID, "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx = context.WithValue(ctx, ctxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireRole enforces the per-action role policy. Runs after requireUser.
func requireRole(role domain.Role, detail string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := currentUser(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if user.Role != role {
				httpx.WriteError(w, http.StatusForbidden, detail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// currentUser returns the store-backed user record placed by requireUser.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.User)
	return u, ok
}
