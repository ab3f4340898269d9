package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// LoginHandler exchanges a username/password pair for a session token.
type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Username and password are required")
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		internalError(w, r, "login failed", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, result)
}
