package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item owned by the user who created it.
type Product struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:255;not null"`
	ProductCode string `json:"product_code" gorm:"size:64"`
	Category    string `json:"category" gorm:"size:128;index"`

	// Image is the public path of the stored image, e.g. /uploads/<uuid>.jpg.
	Image string `json:"image" gorm:"size:512"`

	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	DiscountRate float64 `json:"discount_rate"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;index;not null"`
	Owner     User      `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
