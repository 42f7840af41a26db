package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT o.id, o.customer_id, c.first_name || ' ' || c.last_name AS customer_name,
		       o.order_date, o.shipping_date, o.status, o.shipping_method, o.sales_tax,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.CustomerName,
		&order.Date,
		&order.ShippingDate,
		&order.Status,
		&order.ShippingMethod,
		&order.SalesTax,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, p.description, oi.quantity, oi.quoted_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Description,
			&item.Quantity,
			&item.QuotedPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

// GetAll returns summary rows for the order listing.
func (r *PostgresOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, customer_id, order_date, status
		FROM orders
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.Date,
			&order.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// Add writes the order, its line items and the stock decrements in one
// serializable transaction, so an order can never half-land.
func (r *PostgresOrderRepository) Add(ctx context.Context, o *models.Order) error {
	return database.WithTransaction(ctx, r.db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
	}, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (customer_id, order_date, shipping_date, status, shipping_method, sales_tax, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			 RETURNING id, created_at, updated_at`,
			o.CustomerID, o.Date, o.ShippingDate, o.Status, o.ShippingMethod, o.SalesTax,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("add order: %w", err)
		}

		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID

			err := tx.QueryRowContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, quoted_price)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				item.OrderID, item.ProductID, item.Quantity, item.QuotedPrice,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("add order item: %w", err)
			}

			if err := decrementUnits(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}

// Update rewrites the order header. Line items are immutable once placed.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *models.Order) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders
		 SET customer_id = $1, order_date = $2, shipping_date = $3, status = $4,
		     shipping_method = $5, sales_tax = $6, updated_at = NOW()
		 WHERE id = $7`,
		o.CustomerID, o.Date, o.ShippingDate, o.Status, o.ShippingMethod, o.SalesTax, o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}
