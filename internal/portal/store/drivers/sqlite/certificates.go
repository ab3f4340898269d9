package sqlite

import (
	"context"
	"database/sql"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
)

type certificatesRepo struct {
	db dbtx
}

const certificateColumns = `id, cert_number, farmer_name, farm_name, level, status,
	issued_date, valid_until, user_id, created_at`

func scanCertificate(row interface{ Scan(...any) error }) (domain.Certificate, error) {
	var c domain.Certificate
	var owner sql.NullString
	err := row.Scan(&c.ID, &c.Number, &c.FarmerName, &c.FarmName, &c.Level, &c.Status,
		&c.IssuedDate, &c.ValidUntil, &owner, &c.CreatedAt)
	if err != nil {
		return domain.Certificate{}, mapNotFound(err)
	}
	c.OwnerUserID = mapNullStringPtr(owner)
	return c, nil
}

func (r *certificatesRepo) CreateCertificate(ctx context.Context, c domain.Certificate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO certificates (id, cert_number, farmer_name, farm_name, level, status,
		   issued_date, valid_until, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Number, c.FarmerName, c.FarmName, c.Level, c.Status,
		c.IssuedDate, c.ValidUntil, mapOptionalString(c.OwnerUserID), c.CreatedAt)
	return mapConstraint(err)
}

func (r *certificatesRepo) GetCertificateByNumber(ctx context.Context, number string) (domain.Certificate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE cert_number = ?`, number)
	return scanCertificate(row)
}

func (r *certificatesRepo) ListActiveCertificates(ctx context.Context) ([]domain.Certificate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates
		 WHERE status = ? ORDER BY cert_number`, domain.CertificateStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *certificatesRepo) UpdateCertificateStatus(ctx context.Context, number, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE certificates SET status = ? WHERE cert_number = ?`, status, number)
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

func (r *certificatesRepo) CountCertificates(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count)
	return count, err
}

func (r *certificatesRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM certificates WHERE status = ?`, status).Scan(&count)
	return count, err
}
