package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agriwatch/farmportal/internal/portal/domain"
	"github.com/agriwatch/farmportal/internal/portal/store"
	"github.com/agriwatch/farmportal/pkg/cryptox"
	"github.com/agriwatch/farmportal/pkg/idx"
	"github.com/agriwatch/farmportal/pkg/jwtx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

// TokenResult is what a successful credential exchange returns.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	Username    string `json:"username,omitempty"`
}

// AuthService owns the credential store operations: login and user
// creation. Session minting is delegated to the injected signer; once a
// token is out the door its expiry is its only lifecycle bound.
type AuthService struct {
	Store  store.Store
	Tokens *jwtx.HS256
	Now    func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login verifies the username/password pair and issues a session token
// carrying the user's identity and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenResult{}, ErrInvalidCredentials
		}
		return TokenResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("stored password hash unreadable", "user_id", user.ID, "err", err)
		}
		return TokenResult{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(user.ID, user.Username, user.Role.String())
	if err != nil {
		return TokenResult{}, fmt.Errorf("sign session token: %w", err)
	}

	log.Info("login succeeded", "user_id", user.ID, slog.String("role", user.Role.String()))

	return TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role.String(),
	}, nil
}

// CreateUser provisions a new account. Admin/bootstrap-only; the role must
// come from the closed set and usernames are unique.
func (s *AuthService) CreateUser(ctx context.Context, username, password, fullName string, role domain.Role) (domain.User, error) {
	if _, err := domain.ParseRole(role.String()); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     fullName,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	return user, nil
}
