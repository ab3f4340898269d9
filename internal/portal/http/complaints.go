package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// ComplaintsHandler covers complaint submission, listing, and admin triage.
type ComplaintsHandler struct {
	ComplaintService *service.ComplaintService
}

type createComplaintRequest struct {
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type createComplaintResponse struct {
	ComplaintID string `json:"complaint_id"`
	Status      string `json:"status"`
}

type complaintResponse struct {
	ComplaintID      string    `json:"complaint_id"`
	UserID           string    `json:"user_id"`
	Category         string    `json:"category"`
	Subject          string    `json:"subject"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	AIClassification *string   `json:"ai_classification"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type updateComplaintRequest struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toComplaintResponse(c domain.Complaint) complaintResponse {
	return complaintResponse{
		ComplaintID:      c.PublicID,
		UserID:           c.UserID,
		Category:         c.Category,
		Subject:          c.Subject,
		Description:      c.Description,
		Status:           c.Status,
		AIClassification: c.AIClassification,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// HandleCreate handles POST /complaints.
func (h *ComplaintsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Subject) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Category and subject are required")
		return
	}

	complaint, err := h.ComplaintService.Create(r.Context(), user.ID, service.ComplaintCreate{
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		internalError(w, r, "create complaint failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, createComplaintResponse{
		ComplaintID: complaint.PublicID,
		Status:      complaint.Status,
	})
}

// HandleList handles GET /complaints. Admins see every complaint, other
// roles only their own.
func (h *ComplaintsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	complaints, err := h.ComplaintService.ListFor(r.Context(), user)
	if err != nil {
		internalError(w, r, "list complaints failed", err)
		return
	}

	out := make([]complaintResponse, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, toComplaintResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateStatus handles PATCH /complaints/{complaint_id}.
func (h *ComplaintsHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("complaint_id")

	var req updateComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Status is required")
		return
	}

	if err := h.ComplaintService.UpdateStatus(r.Context(), publicID, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Complaint not found")
			return
		}
		internalError(w, r, "update complaint status failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Complaint status updated"})
}
