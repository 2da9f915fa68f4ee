package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one link of a rotation chain.
//
// Rows are append-only: rotation flips IsRevoked and records the successor in
// ReplacedByToken, nothing is ever flipped back to active. Expired and revoked
// rows stay around as an audit trail until cmd/auth_cleanup purges them.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	User   User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `json:"-" gorm:"size:128;uniqueIndex;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`

	IsRevoked       bool    `json:"is_revoked" gorm:"not null;default:false"`
	ReplacedByToken *string `json:"replaced_by_token" gorm:"size:128"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsActive reports whether the token may still be presented by a client.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked && !t.IsExpired(now)
}
