// Package pricing computes order totals. It is a pure function of the line
// items and the tax rate; persistence and presentation live elsewhere.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNoLineItems    = errors.New("must add at least one product")
	ErrInvalidTaxRate = errors.New("sales tax rate must be between 0 and 0.1")
)

var (
	discountThreshold = decimal.NewFromInt(100)
	flatDiscount      = decimal.NewFromInt(10)
	maxTaxRate        = decimal.NewFromFloat(0.10)
)

// LineItem is one product/quantity/price tuple within an order. QuotedPrice
// is the unit price locked in when the item was added, which may differ from
// the product's current list price.
type LineItem struct {
	ProductID   string
	Quantity    int
	QuotedPrice decimal.Decimal
}

// Quote is the priced result of an order: all amounts rounded to cents.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Price computes subtotal, tax, discount and total for the given items.
// Orders over $100 get a flat $10 off; the discount is not a percentage.
// Accumulation is exact, rounding happens once at the end.
func Price(items []LineItem, taxRate decimal.Decimal) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrNoLineItems
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(maxTaxRate) {
		return Quote{}, ErrInvalidTaxRate
	}

	var subtotal decimal.Decimal
	for _, item := range items {
		if item.Quantity <= 0 {
			return Quote{}, fmt.Errorf("product %s: quantity must be greater than zero", item.ProductID)
		}
		subtotal = subtotal.Add(item.QuotedPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if subtotal.GreaterThan(discountThreshold) {
		discount = flatDiscount
	}

	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(tax).Sub(discount)

	return Quote{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}, nil
}
