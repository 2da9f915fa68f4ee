package product

import (
	"context"

	"github.com/google/uuid"

	"prodcatalog/internal/domain"
)

// ProductRepositoryInterface — only the methods the product service uses.
type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListAll(ctx context.Context, category string) ([]domain.Product, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// ImageStore persists uploaded product images and returns their public path.
type ImageStore interface {
	Save(data []byte, ext string) (string, error)
	Delete(publicPath string) error
}
