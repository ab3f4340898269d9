package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// UsersHandler covers admin account provisioning.
type UsersHandler struct {
	AuthService *service.AuthService
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// HandleCreate handles POST /users.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Username and password are required")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Role must be one of: admin, worker, farmer")
		return
	}

	user, err := h.AuthService.CreateUser(r.Context(), req.Username, req.Password, req.FullName, role)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			httpx.WriteError(w, http.StatusConflict, "Username already taken")
			return
		}
		internalError(w, r, "create user failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
}
