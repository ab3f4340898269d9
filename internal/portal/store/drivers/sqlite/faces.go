package sqlite

import (
	"context"

	"github.com/agriwatch/farmportal/internal/portal/domain"
)

type faceEnrollmentsRepo struct {
	db dbtx
}

func (r *faceEnrollmentsRepo) CreateFaceEnrollment(ctx context.Context, e domain.FaceEnrollment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO face_enrollments (id, user_id, face_encoding, created_at)
		 VALUES (?, ?, ?, ?)`,
		e.ID, e.UserID, e.Encoding, e.CreatedAt)
	return err
}

func (r *faceEnrollmentsRepo) ListFaceEnrollments(ctx context.Context) ([]domain.FaceEnrollment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, face_encoding, created_at
		 FROM face_enrollments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FaceEnrollment
	for rows.Next() {
		var e domain.FaceEnrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.Encoding, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
