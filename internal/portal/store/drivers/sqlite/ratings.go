package sqlite

import (
	"context"
	"database/sql"

	"github.com/agriwatch/farmportal/internal/portal/domain"
)

type ratingsRepo struct {
	db dbtx
}

func (r *ratingsRepo) CreateRating(ctx context.Context, rating domain.Rating) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ratings (id, user_id, farmer_id, transport_rating, conditions_rating,
		   equipment_rating, wages_rating, comments, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rating.ID, rating.UserID, rating.FarmerID, rating.Transport, rating.Condition,
		rating.Equipment, rating.Wages, mapOptionalString(rating.Comments), rating.CreatedAt)
	return err
}

func (r *ratingsRepo) AverageForFarmer(ctx context.Context, farmerID string) (domain.RatingSummary, error) {
	var (
		transport  sql.NullFloat64
		conditions sql.NullFloat64
		equipment  sql.NullFloat64
		wages      sql.NullFloat64
		total      int64
	)

	// AVG over zero rows is NULL, which is exactly the "no data" signal the
	// summary carries through as nil pointers.
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(transport_rating), AVG(conditions_rating),
		        AVG(equipment_rating), AVG(wages_rating), COUNT(*)
		 FROM ratings WHERE farmer_id = ?`, farmerID).
		Scan(&transport, &conditions, &equipment, &wages, &total)
	if err != nil {
		return domain.RatingSummary{}, err
	}

	return domain.RatingSummary{
		AvgTransport:  mapNullFloatPtr(transport),
		AvgConditions: mapNullFloatPtr(conditions),
		AvgEquipment:  mapNullFloatPtr(equipment),
		AvgWages:      mapNullFloatPtr(wages),
		TotalRatings:  total,
	}, nil
}
