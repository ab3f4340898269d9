package domain

import "time"

// Certificate statuses. Active -> Revoked is the only transition and it is
// one-way; certificates are never deleted.
const (
	CertificateStatusActive  = "Active"
	CertificateStatusRevoked = "Revoked"
)

// Certificate is a compliance certificate issued to a farm. Number is the
// public identifier (CERT-<year>-<seq>); OwnerUserID is optional, unlinked
// certificates are valid.
type Certificate struct {
	ID          string
	Number      string
	FarmerName  string
	FarmName    string
	Level       string
	Status      string
	IssuedDate  string // YYYY-MM-DD
	ValidUntil  string // YYYY-MM-DD
	OwnerUserID *string
	CreatedAt   time.Time
}
