package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/db"
	"koon7r-storefront/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone, customer_address,
		       items, total_amount, status, notes, created_at, updated_at`

// Create inserts order and fills its timestamps
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	log.Printf("📦 Create: Creating order id=%s for customer=%s", order.ID, order.CustomerName)

	if err := db.Require(); err != nil {
		log.Printf("❌ Create: Cannot create order: %v", err)
		return err
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	query := `
		INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone, customer_address,
		                    items, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err = db.DB.QueryRowContext(ctx, query,
		order.ID,
		nullString(order.UserID),
		order.CustomerName,
		nullString(order.CustomerEmail),
		order.CustomerPhone,
		order.CustomerAddress,
		string(items),
		order.TotalAmount,
		string(order.Status),
		nullString(order.Notes),
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		log.Printf("❌ Create: Error creating order: %v", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("✅ Create: Successfully created order id=%s total=%d", order.ID, order.TotalAmount)
	return nil
}

// List returns every order, newest first
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	log.Printf("📦 List: Fetching orders")

	if !db.Available() {
		log.Printf("⚠️ List: Cannot get orders: database not available")
		return []models.Order{}, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error fetching orders: %v", err)
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			log.Printf("❌ List: Error scanning order: %v", err)
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating orders: %v", err)
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d orders", len(orders))
	return orders, nil
}

// GetByID returns one order
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	log.Printf("📦 GetByID: Fetching order id=%s", id)

	if !db.Available() {
		log.Printf("⚠️ GetByID: Cannot get order: database not available")
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ GetByID: Order not found: id=%s", id)
			return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, err
	}

	log.Printf("✅ GetByID: Successfully fetched order id=%s", id)
	return order, nil
}

// UpdateStatus sets the status of an order
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	log.Printf("📦 UpdateStatus: Updating order id=%s to status=%s", id, status)

	if err := db.Require(); err != nil {
		return err
	}

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := db.DB.ExecContext(ctx, query, string(status), id)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating order: %v", err)
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if err := requireAffected(result, "order", id); err != nil {
		log.Printf("❌ UpdateStatus: %v", err)
		return err
	}

	log.Printf("✅ UpdateStatus: Successfully updated order id=%s", id)
	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	log.Printf("📦 Delete: Deleting order id=%s", id)

	if err := db.Require(); err != nil {
		return err
	}

	result, err := db.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Delete: Error deleting order: %v", err)
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if err := requireAffected(result, "order", id); err != nil {
		log.Printf("❌ Delete: %v", err)
		return err
	}

	log.Printf("✅ Delete: Successfully deleted order id=%s", id)
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var userID, customerEmail, notes sql.NullString
	var items, status string

	err := row.Scan(
		&order.ID,
		&userID,
		&order.CustomerName,
		&customerEmail,
		&order.CustomerPhone,
		&order.CustomerAddress,
		&items,
		&order.TotalAmount,
		&status,
		&notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.UserID = userID.String
	order.CustomerEmail = customerEmail.String
	order.Notes = notes.String
	order.Status = models.OrderStatus(status)

	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %s: %w", order.ID, err)
	}
	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// requireAffected maps zero affected rows to apperr.ErrNotFound
func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, apperr.ErrNotFound)
	}
	return nil
}
