package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rl1809/shop-orders/internal/core/domain"
)

func setupTestDB(t *testing.T) *SQLAdapter {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// The in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return NewSQLAdapter(db)
}

func testCustomer(name, email string) domain.Customer {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testProduct(name string, price string, quantity int) domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	customer := testCustomer("Ana", "ana@example.com")
	require.NoError(t, adapter.CreateCustomer(ctx, customer))

	byID, err := adapter.FindCustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, customer.ID, byID.ID)
	assert.Equal(t, "Ana", byID.Name)
	assert.Equal(t, "ana@example.com", byID.Email)

	byEmail, err := adapter.FindCustomerByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, customer.ID, byEmail.ID)
}

func TestFindCustomer_Absent(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	customer, err := adapter.FindCustomerByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, customer)

	customer, err = adapter.FindCustomerByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestProductRoundTrip(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	product := testProduct("Keyboard", "49.90", 10)
	require.NoError(t, adapter.CreateProduct(ctx, product))

	found, err := adapter.FindProductByName(ctx, "Keyboard")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, 10, found.Quantity)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("49.90")),
		"expected price 49.90, got %s", found.Price)

	absent, err := adapter.FindProductByName(ctx, "Mouse")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestFindAllProductsByID_OmitsUnknown(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	p1 := testProduct("Keyboard", "49.90", 10)
	p2 := testProduct("Mouse", "19.90", 5)
	require.NoError(t, adapter.CreateProduct(ctx, p1))
	require.NoError(t, adapter.CreateProduct(ctx, p2))

	products, err := adapter.FindAllProductsByID(ctx, []string{p1.ID, "no-such-id", p2.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)

	ids := []string{products[0].ID, products[1].ID}
	assert.ElementsMatch(t, []string{p1.ID, p2.ID}, ids)
}

func TestFindAllProductsByID_Empty(t *testing.T) {
	adapter := setupTestDB(t)

	products, err := adapter.FindAllProductsByID(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUpdateProductQuantities(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	p1 := testProduct("Keyboard", "49.90", 10)
	p2 := testProduct("Mouse", "19.90", 5)
	require.NoError(t, adapter.CreateProduct(ctx, p1))
	require.NoError(t, adapter.CreateProduct(ctx, p2))

	updated, err := adapter.UpdateProductQuantities(ctx, []domain.ProductQuantity{
		{ProductID: p1.ID, Quantity: 7},
		{ProductID: p2.ID, Quantity: 4},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	found, err := adapter.FindProductByName(ctx, "Keyboard")
	require.NoError(t, err)
	assert.Equal(t, 7, found.Quantity)

	found, err = adapter.FindProductByName(ctx, "Mouse")
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)
}

func TestUpdateProductQuantities_SkipsUnknown(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	p1 := testProduct("Keyboard", "49.90", 10)
	require.NoError(t, adapter.CreateProduct(ctx, p1))

	updated, err := adapter.UpdateProductQuantities(ctx, []domain.ProductQuantity{
		{ProductID: p1.ID, Quantity: 8},
		{ProductID: "no-such-id", Quantity: 99},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, 8, updated[0].Quantity)

	found, err := adapter.FindProductByName(ctx, "Keyboard")
	require.NoError(t, err)
	assert.Equal(t, 8, found.Quantity)
}

func TestCreateOrder_CascadesAndEagerLoads(t *testing.T) {
	adapter := setupTestDB(t)
	ctx := context.Background()

	customer := testCustomer("Ana", "ana@example.com")
	require.NoError(t, adapter.CreateCustomer(ctx, customer))

	product := testProduct("Keyboard", "49.90", 10)
	require.NoError(t, adapter.CreateProduct(ctx, product))

	now := time.Now().UTC().Truncate(time.Second)
	order := domain.Order{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Customer:   customer,
		CreatedAt:  now,
		UpdatedAt:  now,
		Items: []domain.OrderItem{
			{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Quantity:  3,
				Price:     product.Price,
			},
		},
	}
	require.NoError(t, adapter.CreateOrder(ctx, order))

	loaded, err := adapter.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, order.ID, loaded.ID)
	assert.Equal(t, customer.ID, loaded.Customer.ID)
	assert.Equal(t, "Ana", loaded.Customer.Name)

	require.Len(t, loaded.Items, 1)
	item := loaded.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("49.90")),
		"expected price 49.90, got %s", item.Price)
}

func TestFindOrderByID_Absent(t *testing.T) {
	adapter := setupTestDB(t)

	order, err := adapter.FindOrderByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, order)
}
