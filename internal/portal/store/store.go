package store

import (
	"context"
	"errors"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Certificates() Certificates
	Complaints() Complaints
	Ratings() Ratings
	FaceEnrollments() FaceEnrollments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Used for read-then-write sequences that must be atomic, such as
	// certificate number generation. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role domain.Role) (int64, error)

	// ListWithFaceCounts returns every user with the number of face
	// enrollments stored for them.
	ListWithFaceCounts(ctx context.Context) ([]domain.FaceUserSummary, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Certificates interface {
	// CreateCertificate inserts a new certificate (status Active).
	CreateCertificate(ctx context.Context, c domain.Certificate) error

	// GetCertificateByNumber fetches a certificate by its public number.
	GetCertificateByNumber(ctx context.Context, number string) (domain.Certificate, error)

	// ListActiveCertificates returns all certificates with status Active.
	ListActiveCertificates(ctx context.Context) ([]domain.Certificate, error)

	// UpdateCertificateStatus sets the status for the certificate with the
	// given number. Returns ErrNotFound when no such certificate exists.
	UpdateCertificateStatus(ctx context.Context, number, status string) error

	// CountCertificates counts every certificate regardless of status.
	// Feeds the CERT-<year>-<seq> sequence inside a transaction.
	CountCertificates(ctx context.Context) (int64, error)

	// CountByStatus counts certificates with the given status.
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type Complaints interface {
	// CreateComplaint inserts a new complaint. Returns ErrAlreadyExists when
	// the public id collides (two creations within the same second).
	CreateComplaint(ctx context.Context, c domain.Complaint) error

	// GetComplaintByPublicID fetches a complaint by its CPL-... id.
	GetComplaintByPublicID(ctx context.Context, publicID string) (domain.Complaint, error)

	// ListComplaints returns all complaints, newest first.
	ListComplaints(ctx context.Context) ([]domain.Complaint, error)

	// ListComplaintsByUser returns the submitter's complaints, newest first.
	ListComplaintsByUser(ctx context.Context, userID string) ([]domain.Complaint, error)

	// UpdateComplaintStatus stores the status verbatim and bumps updated_at.
	// Returns ErrNotFound when no such complaint exists.
	UpdateComplaintStatus(ctx context.Context, publicID, status string, updatedAt time.Time) error

	// CountByStatuses counts complaints whose status is in the given set.
	CountByStatuses(ctx context.Context, statuses []string) (int64, error)

	// CountByCategory groups complaint counts per category.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
}

type Ratings interface {
	// CreateRating appends a rating row.
	CreateRating(ctx context.Context, r domain.Rating) error

	// AverageForFarmer aggregates all rating rows referencing the farmer.
	// A farmer with no ratings yields a summary with nil averages and a
	// zero count, never an error.
	AverageForFarmer(ctx context.Context, farmerID string) (domain.RatingSummary, error)
}

type FaceEnrollments interface {
	// CreateFaceEnrollment stores an opaque encoding for a user.
	CreateFaceEnrollment(ctx context.Context, e domain.FaceEnrollment) error

	// ListFaceEnrollments returns every stored enrollment, newest first.
	// Exists for real matcher implementations; the shipped matcher never
	// consults it.
	ListFaceEnrollments(ctx context.Context) ([]domain.FaceEnrollment, error)
}
