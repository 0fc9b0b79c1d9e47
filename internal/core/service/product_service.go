package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/shop-orders/internal/core/domain"
	"github.com/rl1809/shop-orders/internal/port"
)

var (
	ErrProductExists  = errors.New("product name already in use")
	ErrInvalidProduct = errors.New("invalid product")
)

type ProductService struct {
	products port.ProductRepository
}

func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create registers a new product. Names must be unique; the uniqueness check
// lives here, not in the repository.
func (s *ProductService) Create(ctx context.Context, name string, price decimal.Decimal, quantity int) (*domain.Product, error) {
	if name == "" || quantity < 0 || price.IsNegative() {
		return nil, ErrInvalidProduct
	}

	existing, err := s.products.FindProductByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	now := time.Now()
	product := domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}
