package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/homeproducts/backoffice/internal/models"
	"github.com/homeproducts/backoffice/internal/validate"
)

// PaymentSubmission is what the payment form hands over on save. Card fields
// are ignored when Method is Check.
type PaymentSubmission struct {
	CustomerID         int64
	OrderID            int64
	Date               time.Time
	Amount             decimal.Decimal
	Method             string
	CardOwner          string
	CardNumber         string
	CardExpirationDate time.Time
}

// SubmitPayment validates and records a payment against an order.
func (s *Service) SubmitPayment(ctx context.Context, sub PaymentSubmission) (*models.Payment, error) {
	now := s.now()

	// Payments are recorded on the day they are taken, never back-dated.
	if err := validate.DateIsToday("payment date", sub.Date, now); err != nil {
		return nil, err
	}
	if err := validate.Positive("amount", sub.Amount); err != nil {
		return nil, err
	}
	if err := validate.OneOf("payment method", sub.Method, models.PaymentMethods); err != nil {
		return nil, err
	}

	if models.IsCardMethod(sub.Method) {
		if err := validate.NotEmpty("card owner", sub.CardOwner); err != nil {
			return nil, err
		}
		if err := validate.CardNumber("card number", sub.CardNumber); err != nil {
			return nil, err
		}
		if err := validate.DateNotPast("card expiration date", sub.CardExpirationDate, now); err != nil {
			return nil, err
		}
	}

	customerCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if err := checkParent(sub.CustomerID, customerCount, "customer"); err != nil {
		return nil, err
	}

	orderCount, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if err := checkParent(sub.OrderID, orderCount, "order"); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		CustomerID: sub.CustomerID,
		OrderID:    sub.OrderID,
		Date:       sub.Date,
		Amount:     sub.Amount,
		Method:     sub.Method,
	}
	if models.IsCardMethod(sub.Method) {
		payment.CardOwner = sub.CardOwner
		payment.CardNumber = sub.CardNumber
		payment.CardExpirationDate = sub.CardExpirationDate
	}

	if err := s.payments.Add(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("order_id", payment.OrderID),
		zap.String("method", payment.Method),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)

	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.GetAll(ctx)
}
