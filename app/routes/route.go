package routes

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/Rakhulsr/go-storefront-cart/app/handlers"
	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/metrics"
	"github.com/Rakhulsr/go-storefront-cart/app/middlewares"
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/renderer"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Sessions *sessions.CookieSessionStore

	// CartStorage holds carts server side under cart:<id>. When nil the
	// cart lives in the session cookie.
	CartStorage repositories.CartStorage

	TaxRate       decimal.Decimal
	ShippingTiers []models.ShippingTier
	CSRFKey       []byte
	Secure        bool
	Indent        bool
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

func NewRouter(deps Dependencies) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tiers := deps.ShippingTiers
	if tiers == nil {
		tiers = services.DefaultShippingTiers()
	}

	validate := NewValidator()
	render := renderer.New(deps.Indent)

	productRepo := repositories.NewProductRepository(deps.DB)
	orderRepo := repositories.NewOrderRepository(deps.DB)
	discountRepo := repositories.NewDiscountRepository(deps.DB)

	discountSvc := services.NewDiscountService(discountRepo, validate)
	shippingSvc := services.NewShippingService(tiers)
	checkoutSvc := services.NewCheckoutService(deps.DB, orderRepo, productRepo, discountSvc, shippingSvc, deps.TaxRate, logger, deps.Metrics)

	carts := cartStoreProvider(deps, logger)

	productHandler := handlers.NewProductHandler(productRepo, render, logger)
	cartHandler := handlers.NewCartHandler(carts, productRepo, checkoutSvc, validate, render, logger)
	checkoutHandler := handlers.NewCheckoutHandler(carts, checkoutSvc, discountSvc, shippingSvc, validate, render, logger)
	orderHandler := handlers.NewOrderHandler(checkoutSvc, render, logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, render)

	router := mux.NewRouter()
	router.Use(middlewares.Recoverer(logger), middlewares.RequestLogger(logger))

	router.HandleFunc("/healthz", healthHandler.Healthz).Methods("GET")
	router.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.CartSessionMiddleware(deps.Sessions, logger))
	if len(deps.CSRFKey) > 0 {
		if !deps.Secure {
			api.Use(plaintextRequests)
		}
		api.Use(csrf.Protect(deps.CSRFKey, csrf.Secure(deps.Secure), csrf.Path("/")), exposeCSRFToken)
	}

	api.HandleFunc("/products", productHandler.Products).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart/items/{productId}", cartHandler.UpdateItem).Methods("PATCH")
	api.HandleFunc("/cart/items/{productId}", cartHandler.RemoveItem).Methods("DELETE")

	api.HandleFunc("/shipping/tiers", checkoutHandler.ShippingTiers).Methods("GET")
	api.HandleFunc("/discounts/validate", checkoutHandler.ValidateDiscount).Methods("POST")
	api.HandleFunc("/checkout/quote", checkoutHandler.Quote).Methods("POST")
	api.HandleFunc("/checkout", checkoutHandler.PlaceOrder).Methods("POST")

	api.HandleFunc("/orders", orderHandler.Orders).Methods("GET")
	api.HandleFunc("/orders/{code}", orderHandler.OrderDetail).Methods("GET")

	return router
}

// plaintextRequests tells csrf to skip the TLS-only referer checks when the
// app is served over plain HTTP.
func plaintextRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func exposeCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CSRF-Token", csrf.Token(r))
		next.ServeHTTP(w, r)
	})
}

func cartStoreProvider(deps Dependencies, logger *zap.Logger) handlers.CartStoreProvider {
	return func(w http.ResponseWriter, r *http.Request) *services.CartStore {
		if deps.CartStorage == nil {
			storage := deps.Sessions.CartStorage(w, r)
			return services.NewCartStore(storage, sessions.CartStorageKey, logger, deps.Metrics)
		}
		cartID := helpers.CartIDFromContext(r.Context())
		return services.NewCartStore(deps.CartStorage, repositories.CartKey(cartID), logger, deps.Metrics)
	}
}
