package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/homeproducts/backoffice/internal/models"
	"github.com/homeproducts/backoffice/internal/pricing"
	"github.com/homeproducts/backoffice/internal/validate"
)

// OrderSubmission is what the order form hands over on save.
type OrderSubmission struct {
	CustomerID     int64
	Date           time.Time
	ShippingDate   time.Time
	Status         string
	ShippingMethod string
	SalesTax       decimal.Decimal
	Items          []OrderItemSubmission
}

// OrderItemSubmission is one row of the products table on the order form.
// A zero QuotedPrice means "quote the current list price".
type OrderItemSubmission struct {
	ProductID   string
	Quantity    int
	QuotedPrice decimal.Decimal
}

// SubmitOrder runs the full order flow: field validation, customer bound
// check, per-product availability, pricing, then a single transactional
// write of the order, its items and the stock decrements.
func (s *Service) SubmitOrder(ctx context.Context, sub OrderSubmission) (*models.Order, error) {
	now := s.now()

	// Orders are recorded on the day they are placed, never back-dated.
	if err := validate.DateIsToday("order date", sub.Date, now); err != nil {
		return nil, err
	}
	if err := validate.DateNotPast("shipping date", sub.ShippingDate, now); err != nil {
		return nil, err
	}
	if err := validate.SalesTaxRate("sales tax", sub.SalesTax); err != nil {
		return nil, err
	}
	if err := validate.OneOf("status", sub.Status, []string{
		models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered,
	}); err != nil {
		return nil, err
	}
	if err := validate.OneOf("shipping method", sub.ShippingMethod, models.ShippingMethods); err != nil {
		return nil, err
	}
	if len(sub.Items) == 0 {
		return nil, pricing.ErrNoLineItems
	}

	customerCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := checkParent(sub.CustomerID, customerCount, "customer"); err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(sub.Items))
	for _, item := range sub.Items {
		if item.Quantity <= 0 {
			return nil, &validate.RuleError{
				Field:  fmt.Sprintf("product %s quantity", item.ProductID),
				Reason: "must be greater than zero",
			}
		}

		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if item.Quantity > product.UnitsOnHand {
			return nil, &validate.RuleError{
				Field:  fmt.Sprintf("product %s quantity", item.ProductID),
				Reason: fmt.Sprintf("only %d units on hand", product.UnitsOnHand),
			}
		}

		quoted := item.QuotedPrice
		if quoted.IsZero() {
			quoted = product.UnitPrice
		}

		items = append(items, models.LineItem{
			ProductID:   product.ID,
			Description: product.Description,
			Quantity:    item.Quantity,
			QuotedPrice: quoted,
		})
	}

	quote, err := s.priceItems(items, sub.SalesTax)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:     sub.CustomerID,
		Date:           sub.Date,
		ShippingDate:   sub.ShippingDate,
		Status:         sub.Status,
		ShippingMethod: sub.ShippingMethod,
		SalesTax:       sub.SalesTax,
		Subtotal:       quote.Subtotal,
		Tax:            quote.Tax,
		Discount:       quote.Discount,
		Total:          quote.Total,
		Items:          items,
	}

	if err := s.orders.Add(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order submitted",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// GetOrder loads an order and recomputes its derived totals from the stored
// line items. Totals are never persisted, only the facts they derive from.
func (s *Service) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(order.Items) > 0 {
		quote, err := s.priceItems(order.Items, order.SalesTax)
		if err != nil {
			return nil, fmt.Errorf("price order %d: %w", id, err)
		}
		order.Subtotal = quote.Subtotal
		order.Tax = quote.Tax
		order.Discount = quote.Discount
		order.Total = quote.Total
	}

	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

// UpdateOrder rewrites the order header after the same field validation as
// submission, minus the date-is-today rule (the original date stands).
func (s *Service) UpdateOrder(ctx context.Context, order *models.Order) error {
	if err := validate.DateNotPast("shipping date", order.ShippingDate, s.now()); err != nil {
		return err
	}
	if err := validate.SalesTaxRate("sales tax", order.SalesTax); err != nil {
		return err
	}
	if err := validate.OneOf("status", order.Status, []string{
		models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered,
	}); err != nil {
		return err
	}
	if err := validate.OneOf("shipping method", order.ShippingMethod, models.ShippingMethods); err != nil {
		return err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	s.log.Info("order updated", zap.Int64("order_id", order.ID), zap.String("status", order.Status))
	return nil
}

// PriceOrder computes totals for display before anything is saved.
func (s *Service) PriceOrder(items []models.LineItem, taxRate decimal.Decimal) (pricing.Quote, error) {
	return s.priceItems(items, taxRate)
}

func (s *Service) priceItems(items []models.LineItem, taxRate decimal.Decimal) (pricing.Quote, error) {
	lineItems := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, pricing.LineItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			QuotedPrice: item.QuotedPrice,
		})
	}
	return pricing.Price(lineItems, taxRate)
}
