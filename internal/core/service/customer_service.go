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
	ErrCustomerExists  = errors.New("email already in use")
	ErrInvalidCustomer = errors.New("invalid customer")
)

type CustomerService struct {
	customers port.CustomerRepository
}

func NewCustomerService(customers port.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create registers a new customer, rejecting emails that are already taken.
func (s *CustomerService) Create(ctx context.Context, name, email string) (*domain.Customer, error) {
	if name == "" || email == "" {
		return nil, ErrInvalidCustomer
	}

	existing, err := s.customers.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	now := time.Now()
	customer := domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.customers.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}
