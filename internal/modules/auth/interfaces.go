package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"prodcatalog/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

// RefreshTokenRepositoryInterface — the persisted refresh-token ledger.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	Rotate(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*domain.RefreshToken, error)
}

type tokenIssuer interface {
	CreateAccessToken(user *domain.User) (string, error)
	NewRefreshToken() (string, error)
}
