package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
)

type complaintsRepo struct {
	db dbtx
}

const complaintColumns = `id, complaint_id, user_id, category, subject, description,
	status, ai_classification, created_at, updated_at`

func scanComplaint(row interface{ Scan(...any) error }) (domain.Complaint, error) {
	var c domain.Complaint
	var ai sql.NullString
	err := row.Scan(&c.ID, &c.PublicID, &c.UserID, &c.Category, &c.Subject, &c.Description,
		&c.Status, &ai, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Complaint{}, mapNotFound(err)
	}
	c.AIClassification = mapNullStringPtr(ai)
	return c, nil
}

func (r *complaintsRepo) CreateComplaint(ctx context.Context, c domain.Complaint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO complaints (id, complaint_id, user_id, category, subject, description,
		   status, ai_classification, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.PublicID, c.UserID, c.Category, c.Subject, c.Description,
		c.Status, mapOptionalString(c.AIClassification), c.CreatedAt, c.UpdatedAt)
	return mapConstraint(err)
}

func (r *complaintsRepo) GetComplaintByPublicID(ctx context.Context, publicID string) (domain.Complaint, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE complaint_id = ?`, publicID)
	return scanComplaint(row)
}

func (r *complaintsRepo) listComplaints(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *complaintsRepo) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	return r.listComplaints(ctx,
		`SELECT `+complaintColumns+` FROM complaints ORDER BY created_at DESC`)
}

func (r *complaintsRepo) ListComplaintsByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return r.listComplaints(ctx,
		`SELECT `+complaintColumns+` FROM complaints
		 WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *complaintsRepo) UpdateComplaintStatus(ctx context.Context, publicID, status string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE complaints SET status = ?, updated_at = ? WHERE complaint_id = ?`,
		status, updatedAt, publicID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *complaintsRepo) CountByStatuses(ctx context.Context, statuses []string) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}

	var count int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM complaints WHERE status IN (%s)`, placeholders),
		args...).Scan(&count)
	return count, err
}

func (r *complaintsRepo) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM complaints GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CategoryCount
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}
