package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductQuantity pairs a product id with a quantity. It is used both as an
// order line request and as a bulk quantity-update input.
type ProductQuantity struct {
	ProductID string
	Quantity  int
}
