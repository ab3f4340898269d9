package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/idx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

const dateLayout = "2006-01-02"

// CertificateIssue is the input for issuing a certificate.
type CertificateIssue struct {
	FarmerName string
	FarmName   string
	Level      string
	ValidUntil string // YYYY-MM-DD
}

// CertificateService owns the certificate lifecycle: issue (Active) and a
// one-way transition to Revoked. Certificates are never deleted.
type CertificateService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *CertificateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue creates a new Active certificate. The number sequence is row count
// plus one; reading the count and inserting happen inside one transaction
// so concurrent issuers cannot mint the same number.
func (s *CertificateService) Issue(ctx context.Context, in CertificateIssue) (domain.Certificate, error) {
	now := s.now().UTC()
	issued := now.Format(dateLayout)

	validUntil, err := time.Parse(dateLayout, in.ValidUntil)
	if err != nil {
		return domain.Certificate{}, ErrInvalidValidUntil
	}
	issuedDay, err := time.Parse(dateLayout, issued)
	if err != nil {
		return domain.Certificate{}, err
	}
	// A certificate that expires on or before its issue date is nonsense.
	if !validUntil.After(issuedDay) {
		return domain.Certificate{}, ErrInvalidValidUntil
	}

	var cert domain.Certificate
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Certificates().CountCertificates(ctx)
		if err != nil {
			return err
		}

		cert = domain.Certificate{
			ID:         idx.New().String(),
			Number:     fmt.Sprintf("CERT-%d-%03d", now.Year(), count+1),
			FarmerName: in.FarmerName,
			FarmName:   in.FarmName,
			Level:      in.Level,
			Status:     domain.CertificateStatusActive,
			IssuedDate: issued,
			ValidUntil: validUntil.Format(dateLayout),
			CreatedAt:  now,
		}

		return tx.Certificates().CreateCertificate(ctx, cert)
	})
	if err != nil {
		return domain.Certificate{}, err
	}

	slogx.FromContext(ctx).Info("certificate issued", "cert_number", cert.Number)
	return cert, nil
}

// ListActive returns all certificates still in the Active state.
func (s *CertificateService) ListActive(ctx context.Context) ([]domain.Certificate, error) {
	return s.Store.Certificates().ListActiveCertificates(ctx)
}

// GetByNumber looks a certificate up by its public number.
func (s *CertificateService) GetByNumber(ctx context.Context, number string) (domain.Certificate, error) {
	return s.Store.Certificates().GetCertificateByNumber(ctx, number)
}

// Revoke moves a certificate to Revoked. Revoking an already-Revoked
// certificate is a no-op that still succeeds; there is no way back.
func (s *CertificateService) Revoke(ctx context.Context, number string) error {
	err := s.Store.Certificates().UpdateCertificateStatus(ctx, number, domain.CertificateStatusRevoked)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("certificate revoked", "cert_number", number)
	return nil
}
