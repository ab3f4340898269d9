package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// RatingsHandler covers rating submission and the per-farmer aggregate.
type RatingsHandler struct {
	RatingService *service.RatingService
}

type createRatingRequest struct {
	FarmerID   string  `json:"farmer_id"`
	Transport  int     `json:"transport_rating"`
	Conditions int     `json:"conditions_rating"`
	Equipment  int     `json:"equipment_rating"`
	Wages      int     `json:"wages_rating"`
	Comments   *string `json:"comments"`
}

type ratingSummaryResponse struct {
	AvgTransport  *float64 `json:"avg_transport"`
	AvgConditions *float64 `json:"avg_conditions"`
	AvgEquipment  *float64 `json:"avg_equipment"`
	AvgWages      *float64 `json:"avg_wages"`
	TotalRatings  int64    `json:"total_ratings"`
}

// HandleCreate handles POST /ratings. Worker only; enforced in the route
// chain.
func (h *RatingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createRatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FarmerID) == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "farmer_id is required")
		return
	}

	_, err := h.RatingService.Create(r.Context(), user.ID, service.RatingCreate{
		FarmerID:  req.FarmerID,
		Transport: req.Transport,
		Condition: req.Conditions,
		Equipment: req.Equipment,
		Wages:     req.Wages,
		Comments:  req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScore):
			httpx.WriteError(w, http.StatusUnprocessableEntity, "Ratings must be between 1 and 5")
		case errors.Is(err, service.ErrFarmerNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Farmer not found")
		default:
			internalError(w, r, "create rating failed", err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, messageResponse{Message: "Rating submitted"})
}

// HandleFarmerSummary handles GET /ratings/farmer/{farmer_id}. Public.
// An unknown farmer returns the empty aggregate rather than 404: the
// aggregate is defined over zero or more rows.
func (h *RatingsHandler) HandleFarmerSummary(w http.ResponseWriter, r *http.Request) {
	farmerID := r.PathValue("farmer_id")

	summary, err := h.RatingService.AverageForFarmer(r.Context(), farmerID)
	if err != nil {
		internalError(w, r, "rating summary failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ratingSummaryResponse{
		AvgTransport:  summary.AvgTransport,
		AvgConditions: summary.AvgConditions,
		AvgEquipment:  summary.AvgEquipment,
		AvgWages:      summary.AvgWages,
		TotalRatings:  summary.TotalRatings,
	})
}
