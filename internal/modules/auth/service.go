package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prodcatalog/internal/domain"
	"prodcatalog/internal/pkg/password"
	"prodcatalog/internal/repository"
)

// Service orchestrates the credential and token lifecycle: register, login,
// refresh-token rotation and revocation. All session state lives in the
// stores, so any instance can serve any request.
type Service struct {
	users      UserRepositoryInterface
	tokens     RefreshTokenRepositoryInterface
	issuer     tokenIssuer
	refreshTTL time.Duration
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	issuer tokenIssuer,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		issuer:     issuer,
		refreshTTL: refreshTTL,
	}
}

// Register creates a user and issues the first token pair. The email check
// runs before the username check, so a request that collides on both reports
// the email conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		EmailConfirmed: true,
		SecurityStamp:  uuid.NewString(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         summarize(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login verifies credentials and issues a token pair. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         summarize(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh exchanges a live refresh token for a new pair, revoking the
// presented token. Missing, revoked and expired tokens all fail with
// ErrInvalidToken; a revoked token is never accepted again, whatever the
// client retries.
func (s *Service) Refresh(ctx context.Context, presentedToken string) (*TokenPair, error) {
	current, err := s.tokens.GetByToken(ctx, presentedToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !current.IsActive(time.Now().UTC()) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	newToken, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	// The rotate transaction re-checks the token under write; if a concurrent
	// refresh won the race, this one observes the token as already revoked.
	_, err = s.tokens.Rotate(ctx, presentedToken, newToken, time.Now().UTC().Add(s.refreshTTL))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repository.ErrTokenNotActive) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := s.issuer.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newToken}, nil
}

// Revoke marks the token revoked. Revoking an unknown or already revoked
// token succeeds.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Logout revokes the presented refresh token if there is one. An empty token
// is a no-op; logout always reports success to the caller.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Revoke(ctx, token)
}

// GetUser returns a caller-facing view of a user.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*UserSummary, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(user)
	return &summary, nil
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.issuer.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	if _, err := s.tokens.Create(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func summarize(user *domain.User) UserSummary {
	return UserSummary{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
	}
}
