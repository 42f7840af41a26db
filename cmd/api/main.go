package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/homeproducts/backoffice/internal/config"
	"github.com/homeproducts/backoffice/internal/database"
	"github.com/homeproducts/backoffice/internal/logger"
	"github.com/homeproducts/backoffice/internal/models"
	"github.com/homeproducts/backoffice/internal/pricing"
	"github.com/homeproducts/backoffice/internal/service"
	"github.com/homeproducts/backoffice/internal/store"
	"github.com/homeproducts/backoffice/internal/validate"
)

const dateLayout = "2006-01-02"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	zaplog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Build logger: %v", err)
	}
	defer zaplog.Sync()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		zaplog.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	zaplog.Info("connected to database")

	svc := service.New(
		store.NewCustomerRepository(db),
		store.NewOrderRepository(db),
		store.NewProductRepository(db),
		store.NewSalesRepRepository(db),
		store.NewPaymentRepository(db),
		zaplog,
	)

	mux := http.NewServeMux()

	mux.HandleFunc("/customers", handleCustomers(svc))
	mux.HandleFunc("/customers/", handleCustomerByID(svc))
	mux.HandleFunc("/orders", handleOrders(svc))
	mux.HandleFunc("/orders/", handleOrderByID(svc))
	mux.HandleFunc("/products", handleProducts(svc))
	mux.HandleFunc("/products/", handleProductByID(svc))
	mux.HandleFunc("/salesreps", handleSalesReps(svc))
	mux.HandleFunc("/salesreps/", handleSalesRepByID(svc))
	mux.HandleFunc("/payments", handlePayments(svc))
	mux.HandleFunc("/payments/", handlePaymentByID(svc))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	zaplog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		zaplog.Fatal("server error", zap.Error(err))
	}
}

func handleCustomers(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var customer models.Customer
			if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			customer.ID = 0

			if err := svc.SaveCustomer(ctx, &customer); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusCreated, customer)

		case http.MethodGet:
			customers, err := svc.ListCustomers(ctx)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondJSON(w, http.StatusOK, customers)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleCustomerByID(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(r.URL.Path[len("/customers/"):], 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid customer ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			customer, err := svc.GetCustomer(ctx, id)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, customer)

		case http.MethodPut:
			var customer models.Customer
			if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			customer.ID = id

			if err := svc.SaveCustomer(ctx, &customer); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, customer)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

type orderRequest struct {
	CustomerID     int64           `json:"customer_id"`
	Date           string          `json:"date"`
	ShippingDate   string          `json:"shipping_date"`
	Status         string          `json:"status"`
	ShippingMethod string          `json:"shipping_method"`
	SalesTax       decimal.Decimal `json:"sales_tax"`
	Items          []struct {
		ProductID   string          `json:"product_id"`
		Quantity    int             `json:"quantity"`
		QuotedPrice decimal.Decimal `json:"quoted_price"`
	} `json:"items"`
}

func handleOrders(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var req orderRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			date, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid order date, use YYYY-MM-DD")
				return
			}
			shippingDate, err := time.Parse(dateLayout, req.ShippingDate)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid shipping date, use YYYY-MM-DD")
				return
			}

			sub := service.OrderSubmission{
				CustomerID:     req.CustomerID,
				Date:           date,
				ShippingDate:   shippingDate,
				Status:         req.Status,
				ShippingMethod: req.ShippingMethod,
				SalesTax:       req.SalesTax,
			}
			for _, item := range req.Items {
				sub.Items = append(sub.Items, service.OrderItemSubmission{
					ProductID:   item.ProductID,
					Quantity:    item.Quantity,
					QuotedPrice: item.QuotedPrice,
				})
			}

			order, err := svc.SubmitOrder(ctx, sub)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusCreated, order)

		case http.MethodGet:
			orders, err := svc.ListOrders(ctx)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondJSON(w, http.StatusOK, orders)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleOrderByID(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(r.URL.Path[len("/orders/"):], 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid order ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			order, err := svc.GetOrder(ctx, id)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, order)

		case http.MethodPut:
			order, err := svc.GetOrder(ctx, id)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			var req struct {
				ShippingDate   string `json:"shipping_date"`
				Status         string `json:"status"`
				ShippingMethod string `json:"shipping_method"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			if req.ShippingDate != "" {
				shippingDate, err := time.Parse(dateLayout, req.ShippingDate)
				if err != nil {
					respondError(w, http.StatusBadRequest, "Invalid shipping date, use YYYY-MM-DD")
					return
				}
				order.ShippingDate = shippingDate
			}
			if req.Status != "" {
				order.Status = req.Status
			}
			if req.ShippingMethod != "" {
				order.ShippingMethod = req.ShippingMethod
			}

			if err := svc.UpdateOrder(ctx, order); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, order)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleProducts(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var product models.Product
			if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			if err := svc.SaveProduct(ctx, &product, true); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusCreated, product)

		case http.MethodGet:
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page < 1 {
				page = 1
			}
			pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
			if pageSize < 1 || pageSize > 100 {
				pageSize = 20
			}

			result, err := svc.ListProducts(ctx, page, pageSize)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondJSON(w, http.StatusOK, result)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleProductByID(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := r.URL.Path[len("/products/"):]
		if id == "" {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			product, err := svc.GetProduct(ctx, id)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, product)

		case http.MethodPut:
			var product models.Product
			if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			product.ID = id

			if err := svc.SaveProduct(ctx, &product, false); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, product)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleSalesReps(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var rep models.SalesRep
			if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			rep.ID = 0

			if err := svc.SaveSalesRep(ctx, &rep); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusCreated, rep)

		case http.MethodGet:
			reps, err := svc.ListSalesReps(ctx)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondJSON(w, http.StatusOK, reps)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handleSalesRepByID(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(r.URL.Path[len("/salesreps/"):], 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid sales rep ID")
			return
		}

		switch r.Method {
		case http.MethodGet:
			rep, err := svc.GetSalesRep(ctx, id)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, rep)

		case http.MethodPut:
			var rep models.SalesRep
			if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			rep.ID = id

			if err := svc.SaveSalesRep(ctx, &rep); err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusOK, rep)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

type paymentRequest struct {
	CustomerID         int64           `json:"customer_id"`
	OrderID            int64           `json:"order_id"`
	Date               string          `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Method             string          `json:"method"`
	CardOwner          string          `json:"card_owner"`
	CardNumber         string          `json:"card_number"`
	CardExpirationDate string          `json:"card_expiration_date"`
}

func handlePayments(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodPost:
			var req paymentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			date, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid payment date, use YYYY-MM-DD")
				return
			}

			sub := service.PaymentSubmission{
				CustomerID: req.CustomerID,
				OrderID:    req.OrderID,
				Date:       date,
				Amount:     req.Amount,
				Method:     req.Method,
				CardOwner:  req.CardOwner,
				CardNumber: req.CardNumber,
			}
			if req.CardExpirationDate != "" {
				expiration, err := time.Parse(dateLayout, req.CardExpirationDate)
				if err != nil {
					respondError(w, http.StatusBadRequest, "Invalid card expiration date, use YYYY-MM-DD")
					return
				}
				sub.CardExpirationDate = expiration
			}

			payment, err := svc.SubmitPayment(ctx, sub)
			if err != nil {
				respondError(w, statusFor(err), err.Error())
				return
			}

			respondJSON(w, http.StatusCreated, payment)

		case http.MethodGet:
			payments, err := svc.ListPayments(ctx)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}

			respondJSON(w, http.StatusOK, payments)

		default:
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func handlePaymentByID(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := strconv.ParseInt(r.URL.Path[len("/payments/"):], 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid payment ID")
			return
		}

		payment, err := svc.GetPayment(ctx, id)
		if err != nil {
			respondError(w, statusFor(err), err.Error())
			return
		}

		respondJSON(w, http.StatusOK, payment)
	}
}

// statusFor maps the service error taxonomy onto HTTP codes: bad input and
// referential failures are the client's problem, missing rows are 404,
// anything else is a persistence failure.
func statusFor(err error) int {
	var ruleErr *validate.RuleError
	switch {
	case errors.As(err, &ruleErr),
		errors.Is(err, validate.ErrNoParentRows),
		errors.Is(err, validate.ErrIDOutOfRange),
		errors.Is(err, pricing.ErrNoLineItems),
		errors.Is(err, pricing.ErrInvalidTaxRate),
		errors.Is(err, database.ErrInsufficientStock),
		database.IsForeignKeyViolation(err):
		return http.StatusUnprocessableEntity
	case database.IsUniqueViolation(err):
		return http.StatusConflict
	case errors.Is(err, database.ErrCustomerNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrSalesRepNotFound),
		errors.Is(err, database.ErrPaymentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
