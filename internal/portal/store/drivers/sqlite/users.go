package sqlite

import (
	"context"

	"github.com/agriwatch/farmportal/internal/portal/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, role, full_name, created_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.FullName, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, full_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Role.String(), u.FullName, u.CreatedAt)
	return mapConstraint(err)
}

func (r *usersRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, role.String()).Scan(&count)
	return count, err
}

func (r *usersRepo) ListWithFaceCounts(ctx context.Context) ([]domain.FaceUserSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.full_name, u.role, COUNT(fe.id)
		 FROM users u
		 LEFT JOIN face_enrollments fe ON fe.user_id = u.id
		 GROUP BY u.id
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FaceUserSummary
	for rows.Next() {
		var s domain.FaceUserSummary
		var role string
		if err := rows.Scan(&s.UserID, &s.Username, &s.FullName, &role, &s.FaceCount); err != nil {
			return nil, err
		}
		s.Role = domain.Role(role)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
