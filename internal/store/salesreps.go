package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

type PostgresSalesRepRepository struct {
	db *sql.DB
}

func NewSalesRepRepository(db *sql.DB) *PostgresSalesRepRepository {
	return &PostgresSalesRepRepository{db: db}
}

func (r *PostgresSalesRepRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales_reps`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales reps: %w", err)
	}
	return count, nil
}

func (r *PostgresSalesRepRepository) GetByID(ctx context.Context, id int64) (*models.SalesRep, error) {
	rep := &models.SalesRep{}
	var managerID sql.NullInt64

	query := `
		SELECT id, first_name, last_name, business_number, cell_number, home_number,
		       fax_number, title, street, city, state, zip_code, commission,
		       manager_id, created_at, updated_at
		FROM sales_reps
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rep.ID,
		&rep.FirstName,
		&rep.LastName,
		&rep.BusinessNumber,
		&rep.CellNumber,
		&rep.HomeNumber,
		&rep.FaxNumber,
		&rep.Title,
		&rep.Street,
		&rep.City,
		&rep.State,
		&rep.ZipCode,
		&rep.Commission,
		&managerID,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSalesRepNotFound
		}
		return nil, fmt.Errorf("get sales rep: %w", err)
	}

	if managerID.Valid {
		rep.ManagerID = managerID.Int64
	}

	return rep, nil
}

// GetAll returns summary rows for the rep listing.
func (r *PostgresSalesRepRepository) GetAll(ctx context.Context) ([]models.SalesRep, error) {
	query := `
		SELECT id, first_name, last_name, title, business_number
		FROM sales_reps
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sales reps: %w", err)
	}
	defer rows.Close()

	var reps []models.SalesRep
	for rows.Next() {
		var rep models.SalesRep
		err := rows.Scan(
			&rep.ID,
			&rep.FirstName,
			&rep.LastName,
			&rep.Title,
			&rep.BusinessNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sales rep: %w", err)
		}
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reps, nil
}

func (r *PostgresSalesRepRepository) Add(ctx context.Context, rep *models.SalesRep) error {
	query := `
		INSERT INTO sales_reps (first_name, last_name, business_number, cell_number,
		                        home_number, fax_number, title, street, city, state,
		                        zip_code, commission, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rep.FirstName, rep.LastName, rep.BusinessNumber, rep.CellNumber,
		rep.HomeNumber, rep.FaxNumber, rep.Title, rep.Street, rep.City, rep.State,
		rep.ZipCode, rep.Commission, nullableID(rep.ManagerID),
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("add sales rep: %w", err)
	}

	return nil
}

func (r *PostgresSalesRepRepository) Update(ctx context.Context, rep *models.SalesRep) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sales_reps
		 SET first_name = $1, last_name = $2, business_number = $3, cell_number = $4,
		     home_number = $5, fax_number = $6, title = $7, street = $8, city = $9,
		     state = $10, zip_code = $11, commission = $12, manager_id = $13,
		     updated_at = NOW()
		 WHERE id = $14`,
		rep.FirstName, rep.LastName, rep.BusinessNumber, rep.CellNumber,
		rep.HomeNumber, rep.FaxNumber, rep.Title, rep.Street, rep.City,
		rep.State, rep.ZipCode, rep.Commission, nullableID(rep.ManagerID), rep.ID)
	if err != nil {
		return fmt.Errorf("update sales rep: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrSalesRepNotFound
	}

	return nil
}

// nullableID maps the zero id to SQL NULL for optional foreign keys.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
