// Package validate holds the field-level rules the edit flows apply before
// anything is written. Every rule is a pure function: it gets a value, and
// returns nil or a *RuleError saying which field failed and why.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theplant/luhn"
)

// RuleError describes a single rejected field.
type RuleError struct {
	Field  string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func fail(field, reason string) error {
	return &RuleError{Field: field, Reason: reason}
}

var (
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9_+&*-]+(\.[A-Za-z0-9_+&*-]+)*@([A-Za-z0-9-]+\.)+[A-Za-z]{2,7}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)

	commissionMin = decimal.NewFromFloat(0.05)
	commissionMax = decimal.NewFromFloat(0.10)
	salesTaxMax   = decimal.NewFromFloat(0.10)
)

// Zip accepts 5-digit ZIP codes with an optional plus-four suffix.
func Zip(field, value string) error {
	if !zipPattern.MatchString(value) {
		return fail(field, "must be a ZIP code like 12345 or 12345-6789")
	}
	return nil
}

func Email(field, value string) error {
	if !emailPattern.MatchString(value) {
		return fail(field, "must be a valid email address")
	}
	return nil
}

// Phone accepts exactly ten digits, no punctuation.
func Phone(field, value string) error {
	if !phonePattern.MatchString(value) {
		return fail(field, "must be exactly 10 digits")
	}
	return nil
}

// Commission accepts rates between 0.05 and 0.10 inclusive.
func Commission(field string, rate decimal.Decimal) error {
	if rate.LessThan(commissionMin) || rate.GreaterThan(commissionMax) {
		return fail(field, "commission rate must be between 0.05 and 0.10")
	}
	return nil
}

// SalesTaxRate accepts rates between 0 and 0.10 inclusive.
func SalesTaxRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(salesTaxMax) {
		return fail(field, "sales tax rate must be between 0 and 0.1")
	}
	return nil
}

func NonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fail(field, "must not be negative")
	}
	return nil
}

func Positive(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return fail(field, "must be greater than zero")
	}
	return nil
}

// DateIsToday rejects anything but the current calendar date. Order and
// payment dates are recorded at submission time, never back-dated.
func DateIsToday(field string, value, now time.Time) error {
	if !sameDay(value, now) {
		return fail(field, "must be today's date")
	}
	return nil
}

// DateNotPast accepts today or any later calendar date. Used for shipping
// dates and card expirations.
func DateNotPast(field string, value, now time.Time) error {
	if sameDay(value, now) {
		return nil
	}
	if value.Before(now) {
		return fail(field, "must not be in the past")
	}
	return nil
}

// CardNumber accepts numeric card numbers that pass the Luhn checksum.
func CardNumber(field, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fail(field, "must contain only digits")
	}
	if !luhn.Valid(n) {
		return fail(field, "failed card number checksum")
	}
	return nil
}

// NotEmpty is the catch-all required-field rule.
func NotEmpty(field, value string) error {
	if value == "" {
		return fail(field, "is required")
	}
	return nil
}

// OneOf checks membership in an enumerated value set.
func OneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fail(field, fmt.Sprintf("must be one of %v", allowed))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
