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

// CertificatesHandler covers the certificate lifecycle endpoints.
type CertificatesHandler struct {
	CertificateService *service.CertificateService
}

type issueCertificateRequest struct {
	FarmerName string `json:"farmer_name"`
	FarmName   string `json:"farm_name"`
	Level      string `json:"level"`
	ValidUntil string `json:"valid_until"`
}

type issueCertificateResponse struct {
	CertNumber string `json:"cert_number"`
	Status     string `json:"status"`
}

type certificateResponse struct {
	CertNumber  string  `json:"cert_number"`
	FarmerName  string  `json:"farmer_name"`
	FarmName    string  `json:"farm_name"`
	Level       string  `json:"level"`
	Status      string  `json:"status"`
	IssuedDate  string  `json:"issued_date"`
	ValidUntil  string  `json:"valid_until"`
	OwnerUserID *string `json:"user_id"`
}

func toCertificateResponse(c domain.Certificate) certificateResponse {
	return certificateResponse{
		CertNumber:  c.Number,
		FarmerName:  c.FarmerName,
		FarmName:    c.FarmName,
		Level:       c.Level,
		Status:      c.Status,
		IssuedDate:  c.IssuedDate,
		ValidUntil:  c.ValidUntil,
		OwnerUserID: c.OwnerUserID,
	}
}

// HandleList handles GET /certificates. Only Active certificates are
// listed; revoked ones stay reachable by direct number lookup.
func (h *CertificatesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	certs, err := h.CertificateService.ListActive(r.Context())
	if err != nil {
		internalError(w, r, "list certificates failed", err)
		return
	}

	out := make([]certificateResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, toCertificateResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /certificates/{cert_number}. Public.
func (h *CertificatesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("cert_number")

	cert, err := h.CertificateService.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		internalError(w, r, "get certificate failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCertificateResponse(cert))
}

// HandleIssue handles POST /certificates.
func (h *CertificatesHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req issueCertificateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FarmerName) == "" || strings.TrimSpace(req.FarmName) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Farmer name and farm name are required")
		return
	}

	cert, err := h.CertificateService.Issue(r.Context(), service.CertificateIssue{
		FarmerName: req.FarmerName,
		FarmName:   req.FarmName,
		Level:      req.Level,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidValidUntil) {
			httpx.WriteError(w, http.StatusUnprocessableEntity, "valid_until must be a future YYYY-MM-DD date")
			return
		}
		internalError(w, r, "issue certificate failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, issueCertificateResponse{
		CertNumber: cert.Number,
		Status:     "issued",
	})
}

// HandleRevoke handles DELETE /certificates/{cert_number}. Revocation is
// idempotent: revoking a revoked certificate succeeds again.
func (h *CertificatesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("cert_number")

	if err := h.CertificateService.Revoke(r.Context(), number); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		internalError(w, r, "revoke certificate failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Certificate revoked"})
}
