package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/shop-orders/internal/core/domain"
)

// SQLAdapter implements the customer, product and order repositories on top
// of database/sql. The SQL is portable between the MySQL driver used in
// production and the pure-Go SQLite driver used in tests.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (a *SQLAdapter) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (a *SQLAdapter) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return a.findCustomer(ctx, `WHERE id = ?`, id)
}

func (a *SQLAdapter) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return a.findCustomer(ctx, `WHERE email = ?`, email)
}

func (a *SQLAdapter) findCustomer(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := a.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (a *SQLAdapter) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (a *SQLAdapter) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := a.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (a *SQLAdapter) FindAllProductsByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	return findAllProductsByID(ctx, a.db, ids)
}

func findAllProductsByID(ctx context.Context, q querier, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// UpdateProductQuantities re-fetches the referenced products and overwrites
// the quantity of each one that matches an input item. Items with no matching
// product are skipped without error. All updates commit in one transaction.
func (a *SQLAdapter) UpdateProductQuantities(ctx context.Context, items []domain.ProductQuantity) ([]domain.Product, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := findAllProductsByID(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	now := time.Now()
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		p.Quantity = item.Quantity
		p.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
			item.Quantity, now, item.ProductID,
		); err != nil {
			return nil, fmt.Errorf("update product quantity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit quantity update: %w", err)
	}
	return products, nil
}

// CreateOrder inserts the order and its line items in one transaction.
func (a *SQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		order.ID, order.CustomerID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (id, order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID, order.ID, item.ProductID, item.Quantity, item.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (a *SQLAdapter) FindOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := a.db.QueryRowContext(ctx, `
		SELECT o.id, o.customer_id, o.created_at, o.updated_at,
		       c.id, c.name, c.email, c.created_at, c.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?`, id,
	).Scan(
		&o.ID, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt,
		&o.Customer.ID, &o.Customer.Name, &o.Customer.Email,
		&o.Customer.CreatedAt, &o.Customer.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_products WHERE order_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return &o, nil
}
