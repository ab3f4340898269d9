package domain

import "time"

// ComplaintStatusNew is the status every complaint is created with,
// regardless of caller input. The set of statuses an admin may move a
// complaint to is deliberately open: any non-empty string is stored
// verbatim.
const ComplaintStatusNew = "New"

// Statuses the analytics rollup treats as pending.
const ComplaintStatusInReview = "In Review"

// Complaint is a worker-submitted grievance. PublicID is the external
// identifier (CPL-<YYYYMMDDHHMMSS>); complaints are never deleted.
type Complaint struct {
	ID               string
	PublicID         string
	UserID           string
	Category         string
	Subject          string
	Description      string
	Status           string
	AIClassification *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CategoryCount is one row of the complaints-by-category rollup.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
