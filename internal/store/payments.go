package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

type PostgresPaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	payment := &models.Payment{}
	var cardExpiration sql.NullTime

	query := `
		SELECT id, reference, customer_id, order_id, payment_date, amount, method,
		       card_owner, card_number, card_expiration, created_at
		FROM payments
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.Reference,
		&payment.CustomerID,
		&payment.OrderID,
		&payment.Date,
		&payment.Amount,
		&payment.Method,
		&payment.CardOwner,
		&payment.CardNumber,
		&cardExpiration,
		&payment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	if cardExpiration.Valid {
		payment.CardExpirationDate = cardExpiration.Time
	}

	return payment, nil
}

// GetAll returns summary rows for the payment listing.
func (r *PostgresPaymentRepository) GetAll(ctx context.Context) ([]models.Payment, error) {
	query := `
		SELECT id, reference, customer_id, order_id, payment_date, amount, method
		FROM payments
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.Reference,
			&payment.CustomerID,
			&payment.OrderID,
			&payment.Date,
			&payment.Amount,
			&payment.Method,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return payments, nil
}

func (r *PostgresPaymentRepository) Add(ctx context.Context, p *models.Payment) error {
	if p.Reference == "" {
		p.Reference = uuid.New().String()
	}

	var cardExpiration sql.NullTime
	if !p.CardExpirationDate.IsZero() {
		cardExpiration = sql.NullTime{Time: p.CardExpirationDate, Valid: true}
	}

	query := `
		INSERT INTO payments (reference, customer_id, order_id, payment_date, amount,
		                      method, card_owner, card_number, card_expiration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Reference, p.CustomerID, p.OrderID, p.Date, p.Amount,
		p.Method, p.CardOwner, p.CardNumber, cardExpiration,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("add payment: %w", err)
	}

	return nil
}

func (r *PostgresPaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	var cardExpiration sql.NullTime
	if !p.CardExpirationDate.IsZero() {
		cardExpiration = sql.NullTime{Time: p.CardExpirationDate, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE payments
		 SET customer_id = $1, order_id = $2, payment_date = $3, amount = $4,
		     method = $5, card_owner = $6, card_number = $7, card_expiration = $8
		 WHERE id = $9`,
		p.CustomerID, p.OrderID, p.Date, p.Amount,
		p.Method, p.CardOwner, p.CardNumber, cardExpiration, p.ID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrPaymentNotFound
	}

	return nil
}
