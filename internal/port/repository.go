package port

import (
	"context"

	"github.com/rl1809/shop-orders/internal/core/domain"
)

type CustomerRepository interface {
	// CreateCustomer persists a new customer
	CreateCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByID returns the customer, or nil when absent
	FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error)

	// FindCustomerByEmail returns the customer with the exact email, or nil when absent
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type ProductRepository interface {
	// CreateProduct persists a new product; duplicate names are not checked here
	CreateProduct(ctx context.Context, product domain.Product) error

	// FindProductByName returns the product with the exact name, or nil when absent
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)

	// FindAllProductsByID returns the products that exist, silently omitting
	// ids with no matching row
	FindAllProductsByID(ctx context.Context, ids []string) ([]domain.Product, error)

	// UpdateProductQuantities overwrites the quantity of each matching product
	// with the given value, skipping ids with no matching row, and returns the
	// full fetched set
	UpdateProductQuantities(ctx context.Context, items []domain.ProductQuantity) ([]domain.Product, error)
}

type OrderRepository interface {
	// CreateOrder persists the order together with its line items as one unit
	CreateOrder(ctx context.Context, order domain.Order) error

	// FindOrderByID loads the order with its customer and line items, or nil
	// when absent
	FindOrderByID(ctx context.Context, id string) (*domain.Order, error)
}
