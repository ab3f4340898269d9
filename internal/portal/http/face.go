package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// FaceHandler covers the biometric enrollment endpoints. Matching itself
// is behind service.Matcher; with the shipped placeholder, verify always
// reports no match.
type FaceHandler struct {
	FaceService *service.FaceService
}

type faceRegisterRequest struct {
	UserID   string `json:"user_id"`
	FaceData string `json:"face_data"`
}

type faceVerifyRequest struct {
	FaceData string `json:"face_data"`
}

type faceUserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	FaceCount int64       `json:"face_count"`
}

// HandleRegister handles POST /face/register. Callers may enroll their own
// face; admins may enroll anyone by passing an explicit user_id.
func (h *FaceHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req faceRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FaceData) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "face_data is required")
		return
	}

	targetID := caller.ID
	if req.UserID != "" && req.UserID != caller.ID {
		if caller.Role != domain.RoleAdmin {
			httpx.WriteError(w, http.StatusForbidden, "Cannot enroll another user's face")
			return
		}
		targetID = req.UserID
	}

	if err := h.FaceService.Register(r.Context(), targetID, req.FaceData); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		internalError(w, r, "face register failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, messageResponse{Message: "Face registered"})
}

// HandleVerify handles POST /face/verify: the face login path.
func (h *FaceHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req faceVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FaceData) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "face_data is required")
		return
	}

	result, err := h.FaceService.Verify(r.Context(), req.FaceData)
	if err != nil {
		if errors.Is(err, service.ErrNoFaceMatch) {
			httpx.WriteError(w, http.StatusNotFound, "No matching face found")
			return
		}
		internalError(w, r, "face verify failed", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleListUsers handles GET /face/users: every account with its
// enrollment count.
func (h *FaceHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.FaceService.ListUsers(r.Context())
	if err != nil {
		internalError(w, r, "list face users failed", err)
		return
	}

	out := make([]faceUserResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, faceUserResponse{
			ID:        s.UserID,
			Username:  s.Username,
			FullName:  s.FullName,
			Role:      s.Role,
			FaceCount: s.FaceCount,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
