package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/idx"
	"github.com/agriwatch/farmportal/pkg/jwtx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

// Matcher compares a submitted biometric payload against the enrolled
// encodings and returns the best-matching user id, or ErrNoFaceMatch when
// nothing matches. Real matching is an external capability; the portal
// only defines the seam.
type Matcher interface {
	BestMatch(ctx context.Context, encoding string) (string, error)
}

// UnimplementedMatcher is the shipped placeholder: it matches nothing.
// Swap in a real implementation to enable face login.
type UnimplementedMatcher struct{}

func (UnimplementedMatcher) BestMatch(ctx context.Context, encoding string) (string, error) {
	return "", ErrNoFaceMatch
}

// FaceService stores enrollments and, given a real Matcher, exchanges a
// face payload for a session token.
type FaceService struct {
	Store   store.Store
	Matcher Matcher
	Tokens  *jwtx.HS256
	Now     func() time.Time
}

func (s *FaceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register stores an opaque encoding for the user. The payload is never
// interpreted here.
func (s *FaceService) Register(ctx context.Context, userID, encoding string) error {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return err
	}

	enrollment := domain.FaceEnrollment{
		ID:        idx.New().String(),
		UserID:    userID,
		Encoding:  encoding,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Store.FaceEnrollments().CreateFaceEnrollment(ctx, enrollment); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("face enrollment stored", "user_id", userID)
	return nil
}

// Verify runs the matcher over the submitted payload and, on a match,
// issues a session token for the matched user.
func (s *FaceService) Verify(ctx context.Context, encoding string) (TokenResult, error) {
	userID, err := s.Matcher.BestMatch(ctx, encoding)
	if err != nil {
		return TokenResult{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenResult{}, ErrNoFaceMatch
		}
		return TokenResult{}, err
	}

	token, err := s.Tokens.Sign(user.ID, user.Username, user.Role.String())
	if err != nil {
		return TokenResult{}, fmt.Errorf("sign session token: %w", err)
	}

	return TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role.String(),
		Username:    user.Username,
	}, nil
}

// ListUsers returns every user with their enrollment count, for the admin
// overview.
func (s *FaceService) ListUsers(ctx context.Context) ([]domain.FaceUserSummary, error) {
	return s.Store.Users().ListWithFaceCounts(ctx)
}
