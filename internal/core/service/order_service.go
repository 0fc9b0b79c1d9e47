package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/shop-orders/internal/core/domain"
	"github.com/rl1809/shop-orders/internal/port"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoItems           = errors.New("order has no items")
)

type OrderService struct {
	orders    port.OrderRepository
	products  port.ProductRepository
	customers port.CustomerRepository
}

func NewOrderService(orders port.OrderRepository, products port.ProductRepository, customers port.CustomerRepository) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
	}
}

// PlaceOrder validates every requested item against an in-memory view of the
// referenced products, then persists the decremented quantities in one batch
// and creates the order aggregate. No write happens if any validation fails.
//
// The stock update and the order insert are two separate persistence calls;
// a failure between them leaves stock decremented with no matching order.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID string, items []domain.ProductQuantity) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	customer, err := s.customers.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindAllProductsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	orderID := uuid.New().String()
	orderItems := make([]domain.OrderItem, 0, len(items))

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if product.Quantity < item.Quantity {
			return nil, fmt.Errorf("%w: product %s has %d, requested %d",
				ErrInsufficientStock, product.ID, product.Quantity, item.Quantity)
		}
		// Decrement the in-memory view so a product id repeated in one order
		// is validated against the remaining stock, not the original.
		product.Quantity -= item.Quantity

		orderItems = append(orderItems, domain.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	updates := make([]domain.ProductQuantity, 0, len(products))
	for _, p := range products {
		updates = append(updates, domain.ProductQuantity{ProductID: p.ID, Quantity: p.Quantity})
	}
	if _, err := s.products.UpdateProductQuantities(ctx, updates); err != nil {
		return nil, fmt.Errorf("update product quantities: %w", err)
	}

	now := time.Now()
	order := domain.Order{
		ID:         orderID,
		CustomerID: customer.ID,
		Customer:   *customer,
		Items:      orderItems,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &order, nil
}

// GetOrder loads the order aggregate with its customer and line items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
