package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const cartCountHeader = "X-Cart-Count"

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=9999"`
}

type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=9999"`
}

type cartResponse struct {
	Items     []models.LineItem       `json:"items"`
	ItemCount int                     `json:"itemCount"`
	Subtotal  decimal.Decimal         `json:"subtotal"`
	Pricing   models.PricingBreakdown `json:"pricing"`
	Warning   string                  `json:"warning,omitempty"`
}

type CartHandler struct {
	carts       CartStoreProvider
	productRepo repositories.ProductRepositoryImpl
	checkout    *services.CheckoutService
	validate    *validator.Validate
	render      *render.Render
	logger      *zap.Logger
}

func NewCartHandler(
	carts CartStoreProvider,
	productRepo repositories.ProductRepositoryImpl,
	checkout *services.CheckoutService,
	validate *validator.Validate,
	render *render.Render,
	logger *zap.Logger,
) *CartHandler {
	return &CartHandler{
		carts:       carts,
		productRepo: productRepo,
		checkout:    checkout,
		validate:    validate,
		render:      render,
		logger:      logger,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts(w, r)
	store.Load(r.Context())
	h.respond(w, r, store, http.StatusOK, "")
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		badRequest(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx := r.Context()
	product, ok := h.findProduct(w, r, req.ProductID)
	if !ok {
		return
	}

	store := h.carts(w, r)
	store.Load(ctx)

	inCart := 0
	if i := store.State().Find(models.ProductID(product.ID)); i >= 0 {
		inCart = store.Items()[i].Quantity
	}
	if quantity > product.Stock-inCart {
		writeError(h.render, h.logger, w, r, outOfStock(product))
		return
	}

	warning, err := persistWarning(store.Add(ctx, *product, quantity))
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	h.respond(w, r, store, http.StatusOK, warning)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		badRequest(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	ctx := r.Context()
	productID := models.ProductID(mux.Vars(r)["productId"])
	store := h.carts(w, r)
	store.Load(ctx)

	// raising a line is held to the same stock limit as adding to it
	if *req.Quantity > 0 && store.State().Find(productID) >= 0 {
		product, ok := h.findProduct(w, r, productID.String())
		if !ok {
			return
		}
		if *req.Quantity > product.Stock {
			writeError(h.render, h.logger, w, r, outOfStock(product))
			return
		}
	}

	warning, err := persistWarning(store.UpdateQuantity(ctx, productID, *req.Quantity))
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	h.respond(w, r, store, http.StatusOK, warning)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.carts(w, r)
	store.Load(ctx)

	productID := models.ProductID(mux.Vars(r)["productId"])
	warning, err := persistWarning(store.Remove(ctx, productID))
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	h.respond(w, r, store, http.StatusOK, warning)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.carts(w, r)
	store.Load(ctx)

	warning, err := persistWarning(store.Clear(ctx))
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	h.respond(w, r, store, http.StatusOK, warning)
}

func (h *CartHandler) findProduct(w http.ResponseWriter, r *http.Request, id string) (*models.Product, bool) {
	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return nil, false
	}
	if product == nil {
		writeError(h.render, h.logger, w, r, fmt.Errorf("%w: %s", services.ErrProductNotFound, id))
		return nil, false
	}
	return product, true
}

func outOfStock(product *models.Product) error {
	return fmt.Errorf("%w: only %d of '%s' available", services.ErrInsufficientStock, product.Stock, product.Name)
}

// respond writes the cart with a preview priced without discount or
// shipping.
func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, store *services.CartStore, status int, warning string) {
	quote, err := h.checkout.Quote(r.Context(), store, services.CheckoutRequest{})
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	w.Header().Set(cartCountHeader, strconv.Itoa(store.ItemCount()))
	_ = h.render.JSON(w, status, cartResponse{
		Items:     quote.Items,
		ItemCount: quote.ItemCount,
		Subtotal:  quote.Pricing.Subtotal,
		Pricing:   quote.Pricing,
		Warning:   warning,
	})
}
