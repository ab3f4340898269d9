package domain

import "time"

// Rating is one worker's scoring of a farmer across the four tracked
// conditions. Append-only; rows are never mutated or deleted.
type Rating struct {
	ID        string
	UserID    string // rater
	FarmerID  string // ratee
	Transport int
	Condition int
	Equipment int
	Wages     int
	Comments  *string
	CreatedAt time.Time
}

// RatingSummary is the per-farmer aggregate. The averages are nil when no
// ratings exist so "no data" is distinguishable from all-zero scores.
type RatingSummary struct {
	AvgTransport  *float64
	AvgConditions *float64
	AvgEquipment  *float64
	AvgWages      *float64
	TotalRatings  int64
}
