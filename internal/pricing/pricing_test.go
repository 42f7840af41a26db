package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, qty int, price float64) LineItem {
	return LineItem{ProductID: id, Quantity: qty, QuotedPrice: decimal.NewFromFloat(price)}
}

func TestPriceWorkedScenario(t *testing.T) {
	items := []LineItem{
		item("P1", 3, 20.00),
		item("P2", 1, 50.00),
	}

	quote, err := Price(items, decimal.NewFromFloat(0.07))
	require.NoError(t, err)

	assert.Equal(t, "110.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", quote.Discount.StringFixed(2))
	assert.Equal(t, "7.70", quote.Tax.StringFixed(2))
	assert.Equal(t, "107.70", quote.Total.StringFixed(2))
}

func TestPriceNoDiscountAtOrBelowThreshold(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
	}{
		{"well below", []LineItem{item("P1", 1, 50.00)}},
		{"exactly 100", []LineItem{item("P1", 4, 25.00)}},
		{"just below", []LineItem{item("P1", 1, 99.99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Price(tt.items, decimal.Zero)
			require.NoError(t, err)
			assert.True(t, quote.Discount.IsZero(), "subtotal %s should earn no discount", quote.Subtotal)
		})
	}
}

func TestPriceFlatDiscountAboveThreshold(t *testing.T) {
	// The discount is a flat $10 no matter how far past $100 the subtotal goes.
	tests := []struct {
		name  string
		items []LineItem
	}{
		{"just above", []LineItem{item("P1", 1, 100.01)}},
		{"far above", []LineItem{item("P1", 100, 99.99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Price(tt.items, decimal.Zero)
			require.NoError(t, err)
			assert.Equal(t, "10.00", quote.Discount.StringFixed(2))
		})
	}
}

func TestPriceTotalIdentity(t *testing.T) {
	items := []LineItem{
		item("P1", 2, 37.50),
		item("P2", 5, 12.99),
	}

	for _, rate := range []float64{0, 0.01, 0.05, 0.07, 0.10} {
		taxRate := decimal.NewFromFloat(rate)
		quote, err := Price(items, taxRate)
		require.NoError(t, err)

		expected := quote.Subtotal.Add(quote.Subtotal.Mul(taxRate)).Sub(quote.Discount).Round(2)
		assert.True(t, quote.Total.Equal(expected),
			"rate %v: total %s != subtotal + tax - discount %s", rate, quote.Total, expected)
	}
}

func TestPriceRejectsEmptyItems(t *testing.T) {
	for _, rate := range []float64{0, 0.07, 0.10} {
		_, err := Price(nil, decimal.NewFromFloat(rate))
		assert.ErrorIs(t, err, ErrNoLineItems)
	}
}

func TestPriceRejectsInvalidTaxRate(t *testing.T) {
	items := []LineItem{item("P1", 1, 10.00)}

	_, err := Price(items, decimal.NewFromFloat(-0.01))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = Price(items, decimal.NewFromFloat(0.11))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = Price(items, decimal.NewFromFloat(0.10))
	assert.NoError(t, err, "0.10 is inclusive")
}

func TestPriceRejectsNonPositiveQuantity(t *testing.T) {
	_, err := Price([]LineItem{item("P1", 0, 10.00)}, decimal.Zero)
	assert.Error(t, err)

	_, err = Price([]LineItem{item("P1", -3, 10.00)}, decimal.Zero)
	assert.Error(t, err)
}

func TestPriceRoundsToCents(t *testing.T) {
	// 3 × 19.99 = 59.97, tax at 0.07 = 4.1979 → 4.20
	quote, err := Price([]LineItem{item("P1", 3, 19.99)}, decimal.NewFromFloat(0.07))
	require.NoError(t, err)

	assert.Equal(t, "59.97", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "4.20", quote.Tax.StringFixed(2))
	assert.Equal(t, "64.17", quote.Total.StringFixed(2))
}
