package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// GetByID loads one customer with the derived credit fields. Lifetime order
// total is the sum of that customer's line totals; remaining credit is the
// authorized limit minus it. Neither is stored.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT c.id, c.first_name, c.last_name, c.street, c.city, c.state, c.zip_code,
		       c.credit, c.sales_rep_id, c.company, c.website, c.email,
		       c.business_number, c.cell_number, c.title, c.status, c.notes,
		       COALESCE(SUM(oi.quantity * oi.quoted_price), 0) AS lifetime_order_total,
		       c.created_at, c.updated_at
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE c.id = $1
		GROUP BY c.id`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Street,
		&customer.City,
		&customer.State,
		&customer.ZipCode,
		&customer.Credit,
		&customer.SalesRepID,
		&customer.Company,
		&customer.Website,
		&customer.Email,
		&customer.BusinessNumber,
		&customer.CellNumber,
		&customer.Title,
		&customer.Status,
		&customer.Notes,
		&customer.LifetimeOrderTotal,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	customer.RemainingCredit = customer.Credit.Sub(customer.LifetimeOrderTotal)

	return customer, nil
}

// GetAll returns summary rows for the customer listing.
func (r *PostgresCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, company, email, status
		FROM customers
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.FirstName,
			&customer.LastName,
			&customer.Company,
			&customer.Email,
			&customer.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return customers, nil
}

func (r *PostgresCustomerRepository) Add(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, street, city, state, zip_code,
		                       credit, sales_rep_id, company, website, email,
		                       business_number, cell_number, title, status, notes,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.Street, c.City, c.State, c.ZipCode,
		c.Credit, c.SalesRepID, c.Company, c.Website, c.Email,
		c.BusinessNumber, c.CellNumber, c.Title, c.Status, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("add customer: %w", err)
	}

	return nil
}

func (r *PostgresCustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, street = $3, city = $4, state = $5,
		    zip_code = $6, credit = $7, sales_rep_id = $8, company = $9,
		    website = $10, email = $11, business_number = $12, cell_number = $13,
		    title = $14, status = $15, notes = $16, updated_at = NOW()
		WHERE id = $17`

	result, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Street, c.City, c.State, c.ZipCode,
		c.Credit, c.SalesRepID, c.Company, c.Website, c.Email,
		c.BusinessNumber, c.CellNumber, c.Title, c.Status, c.Notes,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrCustomerNotFound
	}

	return nil
}
