// Package service wires the validation rules, bound checks and pricing engine
// in front of the repositories. Every submit flow is synchronous: validate,
// check foreign keys, compute, persist. A persistence failure is terminal for
// the operation; callers decide whether to resubmit.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/homeproducts/backoffice/internal/models"
	"github.com/homeproducts/backoffice/internal/store"
	"github.com/homeproducts/backoffice/internal/validate"
)

type Service struct {
	customers store.CustomerRepository
	orders    store.OrderRepository
	products  store.ProductRepository
	salesReps store.SalesRepRepository
	payments  store.PaymentRepository
	log       *zap.Logger

	// now is swapped out in tests; the date-equals-today rules depend on it.
	now func() time.Time
}

func New(
	customers store.CustomerRepository,
	orders store.OrderRepository,
	products store.ProductRepository,
	salesReps store.SalesRepRepository,
	payments store.PaymentRepository,
	log *zap.Logger,
) *Service {
	return &Service{
		customers: customers,
		orders:    orders,
		products:  products,
		salesReps: salesReps,
		payments:  payments,
		log:       log,
		now:       time.Now,
	}
}

// checkParent runs the referential bound check for a foreign key, labelling
// the two failure modes with the parent entity's name.
func checkParent(id, count int64, entity string) error {
	if err := validate.CheckBound(id, count); err != nil {
		return fmt.Errorf("%s id %d: %w", entity, id, err)
	}
	return nil
}

// SaveCustomer validates and persists a customer. A zero ID means insert,
// anything else is an update of the existing row.
func (s *Service) SaveCustomer(ctx context.Context, c *models.Customer) error {
	if err := validate.NotEmpty("first name", c.FirstName); err != nil {
		return err
	}
	if err := validate.NotEmpty("last name", c.LastName); err != nil {
		return err
	}
	if err := validate.Zip("zip code", c.ZipCode); err != nil {
		return err
	}
	if err := validate.Email("email", c.Email); err != nil {
		return err
	}
	if err := validate.Phone("business number", c.BusinessNumber); err != nil {
		return err
	}
	if c.CellNumber != "" {
		if err := validate.Phone("cell number", c.CellNumber); err != nil {
			return err
		}
	}
	if err := validate.NonNegative("credit", c.Credit); err != nil {
		return err
	}
	if err := validate.OneOf("status", c.Status, []string{models.CustomerStatusActive, models.CustomerStatusInactive}); err != nil {
		return err
	}

	repCount, err := s.salesReps.Count(ctx)
	if err != nil {
		return fmt.Errorf("count sales reps: %w", err)
	}
	if err := checkParent(c.SalesRepID, repCount, "sales rep"); err != nil {
		return err
	}

	if c.ID == 0 {
		if err := s.customers.Add(ctx, c); err != nil {
			return err
		}
		s.log.Info("customer added", zap.Int64("customer_id", c.ID))
		return nil
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return err
	}
	s.log.Info("customer updated", zap.Int64("customer_id", c.ID))
	return nil
}

// SaveSalesRep validates and persists a sales representative.
func (s *Service) SaveSalesRep(ctx context.Context, rep *models.SalesRep) error {
	if err := validate.NotEmpty("first name", rep.FirstName); err != nil {
		return err
	}
	if err := validate.NotEmpty("last name", rep.LastName); err != nil {
		return err
	}
	if err := validate.Phone("business number", rep.BusinessNumber); err != nil {
		return err
	}
	// The three extra numbers are optional but must be well formed when given.
	for _, n := range []struct{ field, value string }{
		{"cell number", rep.CellNumber},
		{"home number", rep.HomeNumber},
		{"fax number", rep.FaxNumber},
	} {
		if n.value == "" {
			continue
		}
		if err := validate.Phone(n.field, n.value); err != nil {
			return err
		}
	}
	if err := validate.Zip("zip code", rep.ZipCode); err != nil {
		return err
	}
	if err := validate.Commission("commission", rep.Commission); err != nil {
		return err
	}
	if err := validate.OneOf("title", rep.Title, models.SalesRepTitles); err != nil {
		return err
	}

	if rep.ManagerID != 0 {
		repCount, err := s.salesReps.Count(ctx)
		if err != nil {
			return fmt.Errorf("count sales reps: %w", err)
		}
		if err := checkParent(rep.ManagerID, repCount, "manager"); err != nil {
			return err
		}
	}

	if rep.ID == 0 {
		if err := s.salesReps.Add(ctx, rep); err != nil {
			return err
		}
		s.log.Info("sales rep added", zap.Int64("sales_rep_id", rep.ID))
		return nil
	}

	if err := s.salesReps.Update(ctx, rep); err != nil {
		return err
	}
	s.log.Info("sales rep updated", zap.Int64("sales_rep_id", rep.ID))
	return nil
}

// SaveProduct validates and persists a product. The product code is the
// primary key, so insert versus update is an explicit flag here.
func (s *Service) SaveProduct(ctx context.Context, p *models.Product, isNew bool) error {
	if err := validate.NotEmpty("product id", p.ID); err != nil {
		return err
	}
	if err := validate.NotEmpty("description", p.Description); err != nil {
		return err
	}
	if err := validate.Positive("unit price", p.UnitPrice); err != nil {
		return err
	}
	if p.UnitsOnHand < 0 {
		return &validate.RuleError{Field: "units on hand", Reason: "must not be negative"}
	}
	if err := validate.OneOf("class", p.Class, models.ProductClasses); err != nil {
		return err
	}
	if p.WarehouseID < 1 {
		return &validate.RuleError{Field: "warehouse id", Reason: "must be a positive id"}
	}

	if isNew {
		if err := s.products.Add(ctx, p); err != nil {
			return err
		}
		s.log.Info("product added", zap.String("product_id", p.ID))
		return nil
	}

	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	s.log.Info("product updated", zap.String("product_id", p.ID))
	return nil
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.GetAll(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, page, pageSize int) (*store.OffsetPage, error) {
	return s.products.List(ctx, page, pageSize)
}

func (s *Service) GetSalesRep(ctx context.Context, id int64) (*models.SalesRep, error) {
	return s.salesReps.GetByID(ctx, id)
}

func (s *Service) ListSalesReps(ctx context.Context) ([]models.SalesRep, error) {
	return s.salesReps.GetAll(ctx)
}
