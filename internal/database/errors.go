package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSalesRepNotFound = errors.New("sales rep not found")
	ErrPaymentNotFound  = errors.New("payment not found")

	ErrInsufficientStock = errors.New("insufficient units on hand")
)

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a Postgres FK constraint error.
// The service layer bound-checks foreign keys before writing, so hitting this
// means the referenced row disappeared between check and write.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
