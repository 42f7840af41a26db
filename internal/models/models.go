package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID                 int64           `json:"id"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	Street             string          `json:"street"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	ZipCode            string          `json:"zip_code"`
	Credit             decimal.Decimal `json:"credit"`
	SalesRepID         int64           `json:"sales_rep_id"`
	Company            string          `json:"company"`
	Website            string          `json:"website,omitempty"`
	Email              string          `json:"email"`
	BusinessNumber     string          `json:"business_number"`
	CellNumber         string          `json:"cell_number,omitempty"`
	Title              string          `json:"title,omitempty"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	LifetimeOrderTotal decimal.Decimal `json:"lifetime_order_total"`
	RemainingCredit    decimal.Decimal `json:"remaining_credit"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

const (
	CustomerStatusActive   = "Active"
	CustomerStatusInactive = "Inactive"
)

type Order struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customer_id"`
	CustomerName   string          `json:"customer_name,omitempty"`
	Date           time.Time       `json:"date"`
	ShippingDate   time.Time       `json:"shipping_date"`
	Status         string          `json:"status"`
	ShippingMethod string          `json:"shipping_method"`
	SalesTax       decimal.Decimal `json:"sales_tax"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Items          []LineItem      `json:"items,omitempty"`
}

type LineItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	QuotedPrice decimal.Decimal `json:"quoted_price"`
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// ShippingMethods lists the carriers an order may ship with.
var ShippingMethods = []string{
	"Federal Express",
	"UPS Ground",
	"UPS Second Day",
	"US Certified Mail",
	"US Mail Overnight",
}

type Product struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitsOnHand int             `json:"units_on_hand"`
	Class       string          `json:"class"`
	WarehouseID int64           `json:"warehouse_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductClasses are the merchandise categories carried by Home Products Inc.
var ProductClasses = []string{"HW", "SG", "AP", "TO", "GS"}

type SalesRep struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	BusinessNumber string          `json:"business_number"`
	CellNumber     string          `json:"cell_number,omitempty"`
	HomeNumber     string          `json:"home_number,omitempty"`
	FaxNumber      string          `json:"fax_number,omitempty"`
	Title          string          `json:"title"`
	Street         string          `json:"street"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	ZipCode        string          `json:"zip_code"`
	Commission     decimal.Decimal `json:"commission"`
	ManagerID      int64           `json:"manager_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SalesRepTitles is the role set a representative may hold.
var SalesRepTitles = []string{"Sales Associate", "Sales Manager", "Regional Manager"}

type Payment struct {
	ID                 int64           `json:"id"`
	Reference          string          `json:"reference"`
	CustomerID         int64           `json:"customer_id"`
	OrderID            int64           `json:"order_id"`
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Method             string          `json:"method"`
	CardOwner          string          `json:"card_owner,omitempty"`
	CardNumber         string          `json:"card_number,omitempty"`
	CardExpirationDate time.Time       `json:"card_expiration_date,omitzero"`
	CreatedAt          time.Time       `json:"created_at"`
}

const (
	PaymentMethodCheck      = "Check"
	PaymentMethodMastercard = "Mastercard"
	PaymentMethodVisa       = "Visa"
	PaymentMethodDiscover   = "Discover"
	PaymentMethodDebit      = "Debit"
)

// PaymentMethods lists the accepted payment instruments. Everything except
// Check requires the card fields to be filled in.
var PaymentMethods = []string{
	PaymentMethodCheck,
	PaymentMethodMastercard,
	PaymentMethodVisa,
	PaymentMethodDiscover,
	PaymentMethodDebit,
}

// IsCardMethod reports whether the payment method needs card details.
func IsCardMethod(method string) bool {
	return method != PaymentMethodCheck
}
