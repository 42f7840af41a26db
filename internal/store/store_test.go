package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/models"
)

func seedSalesRep(t *testing.T, db *sql.DB) *models.SalesRep {
	t.Helper()

	rep := &models.SalesRep{
		FirstName:      "Dana",
		LastName:       "Reed",
		BusinessNumber: "5559876543",
		Title:          "Sales Associate",
		ZipCode:        "30301",
		Commission:     decimal.NewFromFloat(0.07),
	}
	if err := NewSalesRepRepository(db).Add(context.Background(), rep); err != nil {
		t.Fatalf("Add sales rep: %v", err)
	}
	return rep
}

func seedCustomer(t *testing.T, db *sql.DB, salesRepID int64) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		FirstName:      "Pat",
		LastName:       "Lee",
		ZipCode:        "30301",
		Email:          "pat.lee@example.com",
		BusinessNumber: "5551234567",
		Credit:         decimal.NewFromInt(5000),
		SalesRepID:     salesRepID,
		Status:         models.CustomerStatusActive,
	}
	if err := NewCustomerRepository(db).Add(context.Background(), customer); err != nil {
		t.Fatalf("Add customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *sql.DB, id string, price float64, onHand int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          id,
		Description: "product " + id,
		UnitPrice:   decimal.NewFromFloat(price),
		UnitsOnHand: onHand,
		Class:       "HW",
		WarehouseID: 1,
	}
	if err := NewProductRepository(db).Add(context.Background(), product); err != nil {
		t.Fatalf("Add product: %v", err)
	}
	return product
}

func today() time.Time {
	return time.Now().Truncate(24 * time.Hour)
}

func TestOrderAddAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	rep := seedSalesRep(t, db)
	customer := seedCustomer(t, db, rep.ID)
	seedProduct(t, db, "HW-100", 20.00, 50)
	seedProduct(t, db, "GS-200", 50.00, 30)

	orders := NewOrderRepository(db)
	order := &models.Order{
		CustomerID:     customer.ID,
		Date:           today(),
		ShippingDate:   today().AddDate(0, 0, 3),
		Status:         models.OrderStatusPending,
		ShippingMethod: "UPS Ground",
		SalesTax:       decimal.NewFromFloat(0.07),
		Items: []models.LineItem{
			{ProductID: "HW-100", Quantity: 3, QuotedPrice: decimal.NewFromFloat(20.00)},
			{ProductID: "GS-200", Quantity: 1, QuotedPrice: decimal.NewFromFloat(50.00)},
		},
	}

	if err := orders.Add(ctx, order); err != nil {
		t.Fatalf("Add order: %v", err)
	}
	if order.ID == 0 {
		t.Error("Order ID should not be 0")
	}

	got, err := orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get order: %v", err)
	}
	if got.CustomerName != "Pat Lee" {
		t.Errorf("Expected customer name Pat Lee, got %q", got.CustomerName)
	}
	if len(got.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].ProductID != "HW-100" {
		t.Errorf("Expected first item HW-100, got %s", got.Items[0].ProductID)
	}
	if got.Items[0].Description == "" {
		t.Error("Item description should be joined in")
	}

	// Stock came out of both products.
	products := NewProductRepository(db)
	p1, err := products.GetByID(ctx, "HW-100")
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if p1.UnitsOnHand != 47 {
		t.Errorf("Expected 47 units on hand, got %d", p1.UnitsOnHand)
	}
}

func TestOrderAddInsufficientStockRollsBack(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	rep := seedSalesRep(t, db)
	customer := seedCustomer(t, db, rep.ID)
	seedProduct(t, db, "HW-100", 20.00, 2)

	orders := NewOrderRepository(db)
	order := &models.Order{
		CustomerID:     customer.ID,
		Date:           today(),
		ShippingDate:   today(),
		Status:         models.OrderStatusPending,
		ShippingMethod: "UPS Ground",
		SalesTax:       decimal.NewFromFloat(0.07),
		Items: []models.LineItem{
			{ProductID: "HW-100", Quantity: 5, QuotedPrice: decimal.NewFromFloat(20.00)},
		},
	}

	err := orders.Add(ctx, order)
	if !errors.Is(err, database.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}

	count, err := orders.Count(ctx)
	if err != nil {
		t.Fatalf("Count orders: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no orders after rollback, got %d", count)
	}
}

func TestCustomerDerivedCredit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	rep := seedSalesRep(t, db)
	customer := seedCustomer(t, db, rep.ID)
	seedProduct(t, db, "HW-100", 20.00, 50)

	order := &models.Order{
		CustomerID:     customer.ID,
		Date:           today(),
		ShippingDate:   today(),
		Status:         models.OrderStatusPending,
		ShippingMethod: "UPS Ground",
		SalesTax:       decimal.Zero,
		Items: []models.LineItem{
			{ProductID: "HW-100", Quantity: 3, QuotedPrice: decimal.NewFromFloat(20.00)},
		},
	}
	if err := NewOrderRepository(db).Add(ctx, order); err != nil {
		t.Fatalf("Add order: %v", err)
	}

	got, err := NewCustomerRepository(db).GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("Get customer: %v", err)
	}

	if !got.LifetimeOrderTotal.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected lifetime order total 60, got %s", got.LifetimeOrderTotal)
	}
	if !got.RemainingCredit.Equal(decimal.NewFromInt(4940)) {
		t.Errorf("Expected remaining credit 4940, got %s", got.RemainingCredit)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := NewCustomerRepository(db).GetByID(ctx, 999); !errors.Is(err, database.ErrCustomerNotFound) {
		t.Errorf("Expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := NewProductRepository(db).GetByID(ctx, "NOPE"); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
	if _, err := NewOrderRepository(db).GetByID(ctx, 999); !errors.Is(err, database.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestPaymentAddAssignsReference(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	rep := seedSalesRep(t, db)
	customer := seedCustomer(t, db, rep.ID)
	seedProduct(t, db, "HW-100", 20.00, 50)

	order := &models.Order{
		CustomerID:     customer.ID,
		Date:           today(),
		ShippingDate:   today(),
		Status:         models.OrderStatusPending,
		ShippingMethod: "UPS Ground",
		SalesTax:       decimal.Zero,
		Items: []models.LineItem{
			{ProductID: "HW-100", Quantity: 1, QuotedPrice: decimal.NewFromFloat(20.00)},
		},
	}
	if err := NewOrderRepository(db).Add(ctx, order); err != nil {
		t.Fatalf("Add order: %v", err)
	}

	payments := NewPaymentRepository(db)
	payment := &models.Payment{
		CustomerID: customer.ID,
		OrderID:    order.ID,
		Date:       today(),
		Amount:     decimal.NewFromFloat(20.00),
		Method:     models.PaymentMethodCheck,
	}
	if err := payments.Add(ctx, payment); err != nil {
		t.Fatalf("Add payment: %v", err)
	}
	if payment.Reference == "" {
		t.Error("Payment reference should be assigned")
	}

	got, err := payments.GetByID(ctx, payment.ID)
	if err != nil {
		t.Fatalf("Get payment: %v", err)
	}
	if got.Method != models.PaymentMethodCheck {
		t.Errorf("Expected method Check, got %s", got.Method)
	}
	if !got.CardExpirationDate.IsZero() {
		t.Error("Check payment should have no card expiration")
	}
}

func TestProductList(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for _, id := range []string{"AP-1", "AP-2", "AP-3", "AP-4", "AP-5"} {
		seedProduct(t, db, id, 9.99, 10)
	}

	products := NewProductRepository(db)
	page, err := products.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("List products: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("Expected total 5, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", page.TotalPages)
	}

	items, ok := page.Items.([]models.Product)
	if !ok {
		t.Fatalf("Unexpected items type %T", page.Items)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items on first page, got %d", len(items))
	}
}

func TestSalesRepManagerRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	manager := seedSalesRep(t, db)

	reps := NewSalesRepRepository(db)
	rep := &models.SalesRep{
		FirstName:      "Sam",
		LastName:       "Cho",
		BusinessNumber: "5550001111",
		Title:          "Sales Manager",
		ZipCode:        "30302",
		Commission:     decimal.NewFromFloat(0.09),
		ManagerID:      manager.ID,
	}
	if err := reps.Add(ctx, rep); err != nil {
		t.Fatalf("Add sales rep: %v", err)
	}

	got, err := reps.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("Get sales rep: %v", err)
	}
	if got.ManagerID != manager.ID {
		t.Errorf("Expected manager id %d, got %d", manager.ID, got.ManagerID)
	}

	// The first rep has no manager; the NULL must come back as zero.
	gotManager, err := reps.GetByID(ctx, manager.ID)
	if err != nil {
		t.Fatalf("Get manager: %v", err)
	}
	if gotManager.ManagerID != 0 {
		t.Errorf("Expected no manager, got %d", gotManager.ManagerID)
	}
}
