package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ValidateDiscountRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type CheckoutHandler struct {
	carts     CartStoreProvider
	checkout  *services.CheckoutService
	discounts *services.DiscountService
	shipping  *services.ShippingService
	validate  *validator.Validate
	render    *render.Render
	logger    *zap.Logger
}

func NewCheckoutHandler(
	carts CartStoreProvider,
	checkout *services.CheckoutService,
	discounts *services.DiscountService,
	shipping *services.ShippingService,
	validate *validator.Validate,
	render *render.Render,
	logger *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:     carts,
		checkout:  checkout,
		discounts: discounts,
		shipping:  shipping,
		validate:  validate,
		render:    render,
		logger:    logger,
	}
}

func (h *CheckoutHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (services.CheckoutRequest, bool) {
	var req services.CheckoutRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		badRequest(h.render, w, err)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(h.render, h.logger, w, r, err)
		return req, false
	}
	return req, true
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	store := h.carts(w, r)
	store.Load(r.Context())

	quote, err := h.checkout.Quote(r.Context(), store, req)
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, quote)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	store := h.carts(w, r)
	store.Load(ctx)

	order, err := h.checkout.PlaceOrder(ctx, helpers.CartIDFromContext(ctx), store, req)
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.OrderCode)
	w.Header().Set(cartCountHeader, "0")
	_ = h.render.JSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) ShippingTiers(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"tiers": h.shipping.Tiers()})
}

func (h *CheckoutHandler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req ValidateDiscountRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		badRequest(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	result, err := h.discounts.Validate(r.Context(), req.Code)
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	_ = h.render.JSON(w, status, result)
}
