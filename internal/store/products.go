package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product := &models.Product{}

	query := `
		SELECT id, description, unit_price, units_on_hand, class, warehouse_id, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Description,
		&product.UnitPrice,
		&product.UnitsOnHand,
		&product.Class,
		&product.WarehouseID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, description, unit_price, units_on_hand, class, warehouse_id, created_at, updated_at
		FROM products
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// List pages through the catalog for the product view.
func (r *PostgresProductRepository) List(ctx context.Context, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, description, unit_price, units_on_hand, class, warehouse_id, created_at, updated_at
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	return newOffsetPage(products, total, page, pageSize), nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Description,
			&product.UnitPrice,
			&product.UnitsOnHand,
			&product.Class,
			&product.WarehouseID,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func (r *PostgresProductRepository) Add(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (id, description, unit_price, units_on_hand, class, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Description, p.UnitPrice, p.UnitsOnHand, p.Class, p.WarehouseID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	return nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET description = $1, unit_price = $2, units_on_hand = $3, class = $4,
		     warehouse_id = $5, updated_at = NOW()
		 WHERE id = $6`,
		p.Description, p.UnitPrice, p.UnitsOnHand, p.Class, p.WarehouseID, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

// decrementUnits takes quantity out of stock inside an order transaction.
// The guard in the WHERE clause keeps units_on_hand from going negative.
func decrementUnits(ctx context.Context, tx *sql.Tx, productID string, quantity int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE products
		 SET units_on_hand = units_on_hand - $1,
		     updated_at = NOW()
		 WHERE id = $2
		   AND units_on_hand >= $1`,
		quantity, productID)
	if err != nil {
		return fmt.Errorf("decrement units: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrInsufficientStock
	}

	return nil
}
