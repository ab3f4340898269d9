package service

import (
	"context"
	"errors"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/idx"
)

// RatingCreate is the input for a worker's rating of a farmer.
type RatingCreate struct {
	FarmerID  string
	Transport int
	Condition int
	Equipment int
	Wages     int
	Comments  *string
}

// RatingService owns the append-only rating store and its per-farmer
// aggregate.
type RatingService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *RatingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create appends a rating. Every rating must reference an existing farmer;
// sub-scores are bounded to 1..5.
func (s *RatingService) Create(ctx context.Context, raterID string, in RatingCreate) (domain.Rating, error) {
	for _, score := range []int{in.Transport, in.Condition, in.Equipment, in.Wages} {
		if score < 1 || score > 5 {
			return domain.Rating{}, ErrInvalidScore
		}
	}

	if _, err := s.Store.Users().GetUserByID(ctx, in.FarmerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Rating{}, ErrFarmerNotFound
		}
		return domain.Rating{}, err
	}

	rating := domain.Rating{
		ID:        idx.New().String(),
		UserID:    raterID,
		FarmerID:  in.FarmerID,
		Transport: in.Transport,
		Condition: in.Condition,
		Equipment: in.Equipment,
		Wages:     in.Wages,
		Comments:  in.Comments,
		CreatedAt: s.now().UTC(),
	}

	if err := s.Store.Ratings().CreateRating(ctx, rating); err != nil {
		return domain.Rating{}, err
	}
	return rating, nil
}

// AverageForFarmer returns the per-field averages over every rating of the
// farmer. No ratings means nil averages, not zeros.
func (s *RatingService) AverageForFarmer(ctx context.Context, farmerID string) (domain.RatingSummary, error) {
	return s.Store.Ratings().AverageForFarmer(ctx, farmerID)
}
