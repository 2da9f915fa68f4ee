package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prodcatalog/internal/domain"
)

// ErrTokenNotActive is returned by Rotate when the presented token was
// already revoked by the time the rotation transaction took it. Two
// concurrent refreshes on the same token race here; exactly one wins.
var ErrTokenNotActive = errors.New("refresh token is not active")

// RefreshTokenRepository is the persisted ledger of refresh tokens.
// Rows are only ever inserted or marked revoked, never updated back.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.RefreshToken, error) {
	t := &domain.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks the token revoked. It is idempotent: revoking an already
// revoked or unknown token is a no-op, not an error.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Update("is_revoked", true).Error
}

// Rotate revokes oldToken, links it to newToken and inserts the successor
// for the same user, all in one transaction. The conditional update on
// is_revoked makes concurrent rotations of the same token resolve to a
// single winner: the loser's update matches zero rows and the whole
// transaction rolls back with ErrTokenNotActive.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*domain.RefreshToken, error) {
	var created *domain.RefreshToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.RefreshToken
		if err := tx.Where("token = ?", oldToken).First(&current).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.RefreshToken{}).
			Where("token = ? AND is_revoked = ?", oldToken, false).
			Updates(map[string]any{
				"is_revoked":        true,
				"replaced_by_token": newToken,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenNotActive
		}

		next := &domain.RefreshToken{
			UserID:    current.UserID,
			Token:     newToken,
			ExpiresAt: newExpiresAt,
		}
		if err := tx.Create(next).Error; err != nil {
			return err
		}
		created = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// DeleteExpired purges rows that can never be presented again. Used by
// cmd/auth_cleanup; the service layer never deletes tokens.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
