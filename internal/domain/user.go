package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. Username and email are stored
// lower-cased and carry unique indexes, so uniqueness is case-insensitive.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`

	EmailConfirmed bool   `json:"email_confirmed"`
	SecurityStamp  string `json:"-" gorm:"size:64"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
