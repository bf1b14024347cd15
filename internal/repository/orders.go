package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// PostgresOrderRepository persists orders and their items.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresOrderRepository creates a PostgreSQL-backed order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *logging.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, logger: logger}
}

// PlaceOrder writes the order header and all line items as a single
// transaction and assigns the public order number from the new header id.
// Any failure rolls the whole transaction back: no header row and no item
// rows survive a partial write.
func (r *PostgresOrderRepository) PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.logger.Debug("Placing order", logging.Fields{
		"customer": order.CustomerEmail,
		"items":    len(order.Items),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewPersistenceError("begin transaction", err)
	}
	// No-op after a successful commit.
	defer tx.Rollback()

	now := time.Now()
	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusPending
	order.CreatedAt = now

	headerQuery := `
		INSERT INTO orders (
			user_id, customer_name, customer_email, customer_phone,
			shipping_address, billing_address, city, region, country, postal_code,
			total_amount, tax_amount, shipping_amount, discount_amount, final_amount,
			payment_method, payment_status, order_status, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING id
	`

	err = tx.QueryRowContext(ctx, headerQuery,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddr,
		order.BillingAddr,
		order.City,
		order.Region,
		order.Country,
		order.PostalCode,
		order.Subtotal,
		order.TaxAmount,
		order.ShippingAmount,
		order.DiscountAmount,
		order.FinalAmount,
		order.PaymentMethod,
		order.PaymentStatus,
		order.Status,
		order.Notes,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error("Failed to insert order header", logging.Fields{
			"customer": order.CustomerEmail,
			"error":    err.Error(),
		})
		return nil, apperrors.NewPersistenceError("insert order", err)
	}

	order.Number = models.FormatOrderNumber(order.ID, now.Year())

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET order_number = $1 WHERE id = $2`,
		order.Number, order.ID,
	); err != nil {
		return nil, apperrors.NewPersistenceError("assign order number", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, product_type, product_name, quantity, unit,
			unit_price, total_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if _, err := tx.ExecContext(ctx, itemQuery,
			item.OrderID,
			item.ProductType,
			item.ProductName,
			item.Quantity,
			item.Unit,
			item.UnitPrice,
			item.TotalPrice,
		); err != nil {
			r.logger.Error("Failed to insert order item", logging.Fields{
				"order_id": order.ID,
				"product":  item.ProductName,
				"error":    err.Error(),
			})
			return nil, apperrors.NewPersistenceError("insert order items", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewPersistenceError("commit order", err)
	}

	r.logger.Info("Order placed", logging.Fields{
		"order_id":     order.ID,
		"order_number": order.Number,
		"final_amount": order.FinalAmount,
	})

	return order, nil
}

// GetByID retrieves an order with its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, order_number, user_id, customer_name, customer_email, customer_phone,
		       shipping_address, billing_address, city, region, country, postal_code,
		       total_amount, tax_amount, shipping_amount, discount_amount, final_amount,
		       payment_method, payment_status, order_status, notes, created_at
		FROM orders
		WHERE id = $1
	`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetByNumber retrieves an order by its public order number.
func (r *PostgresOrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	query := `
		SELECT id, order_number, user_id, customer_name, customer_email, customer_phone,
		       shipping_address, billing_address, city, region, country, postal_code,
		       total_amount, tax_amount, shipping_amount, discount_amount, final_amount,
		       payment_method, payment_status, order_status, notes, created_at
		FROM orders
		WHERE order_number = $1
	`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetByUserID retrieves a user's orders, newest first, without items.
func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, order_number, user_id, customer_name, customer_email, customer_phone,
		       shipping_address, billing_address, city, region, country, postal_code,
		       total_amount, tax_amount, shipping_amount, discount_amount, final_amount,
		       payment_method, payment_status, order_status, notes, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// UpdateStatus moves an order to a new fulfillment status. Transition
// validity is the caller's responsibility.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET order_status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("Order status updated", logging.Fields{
		"order_id": id,
		"status":   status,
	})
	return nil
}

// CountOrders returns the total number of orders.
func (r *PostgresOrderRepository) CountOrders(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresOrderRepository) scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var number, notes sql.NullString
	var userID sql.NullInt64

	err := row.Scan(
		&order.ID,
		&number,
		&userID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddr,
		&order.BillingAddr,
		&order.City,
		&order.Region,
		&order.Country,
		&order.PostalCode,
		&order.Subtotal,
		&order.TaxAmount,
		&order.ShippingAmount,
		&order.DiscountAmount,
		&order.FinalAmount,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.Status,
		&notes,
		&order.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if number.Valid {
		order.Number = number.String
	}
	if notes.Valid {
		order.Notes = notes.String
	}
	if userID.Valid {
		order.UserID = &userID.Int64
	}

	return &order, nil
}

func (r *PostgresOrderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_type, product_name, quantity, unit, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductType,
			&item.ProductName,
			&item.Quantity,
			&item.Unit,
			&item.UnitPrice,
			&item.TotalPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
