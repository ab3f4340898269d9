package http

import (
	"net/http"
	"time"

	"github.com/agriwatch/farmportal/pkg/httpx"
)

// MeHandler returns the authenticated caller's own account record.
type MeHandler struct{}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
}
