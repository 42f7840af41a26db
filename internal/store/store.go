// Package store is the persistence boundary: one repository per entity,
// hand-written SQL over database/sql. Repositories hold their *sql.DB and are
// injected into the service layer, so tests can swap in doubles.
package store

import (
	"context"

	"github.com/homeproducts/backoffice/internal/models"
)

type CustomerRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetAll(ctx context.Context) ([]models.Customer, error)
	Add(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
}

type OrderRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Add(ctx context.Context, o *models.Order) error
	Update(ctx context.Context, o *models.Order) error
}

type ProductRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, page, pageSize int) (*OffsetPage, error)
	Add(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
}

type SalesRepRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SalesRep, error)
	GetAll(ctx context.Context) ([]models.SalesRep, error)
	Add(ctx context.Context, r *models.SalesRep) error
	Update(ctx context.Context, r *models.SalesRep) error
}

type PaymentRepository interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	GetAll(ctx context.Context) ([]models.Payment, error)
	Add(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment) error
}
