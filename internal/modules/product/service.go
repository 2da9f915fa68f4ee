package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prodcatalog/internal/domain"
)

// Service contains the business logic for the product catalog. Every mutation
// is scoped to the product's owner; reads are open.
type Service struct {
	products ProductRepositoryInterface
	images   ImageStore
}

func NewService(products ProductRepositoryInterface, images ImageStore) *Service {
	return &Service{products: products, images: images}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*domain.Product, error) {
	imagePath, err := s.images.Save(req.Image, req.ImageExt)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:         req.Name,
		ProductCode:  req.ProductCode,
		Category:     req.Category,
		Image:        imagePath,
		Price:        req.Price,
		Quantity:     req.Quantity,
		DiscountRate: req.DiscountRate,
		CreatedBy:    userID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListAll(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.ListAll(ctx, category)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error) {
	return s.products.ListByOwner(ctx, ownerID)
}

// Update replaces the product's fields. When the request carries no image
// bytes the stored image stays in place; when it does, the old file is
// removed after the new one is saved.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, id int64, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != userID {
		return nil, ErrForbidden
	}

	if len(req.Image) > 0 {
		imagePath, err := s.images.Save(req.Image, req.ImageExt)
		if err != nil {
			return nil, err
		}
		oldImage := p.Image
		p.Image = imagePath
		if oldImage != "" && oldImage != imagePath {
			_ = s.images.Delete(oldImage)
		}
	}

	p.Name = req.Name
	p.ProductCode = req.ProductCode
	p.Category = req.Category
	p.Price = req.Price
	p.Quantity = req.Quantity
	p.DiscountRate = req.DiscountRate
	now := time.Now().UTC()
	p.UpdatedAt = &now

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatedBy != userID {
		return ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if p.Image != "" {
		_ = s.images.Delete(p.Image)
	}
	return nil
}
