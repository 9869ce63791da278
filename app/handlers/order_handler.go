package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type OrderHandler struct {
	checkout *services.CheckoutService
	render   *render.Render
	logger   *zap.Logger
}

func NewOrderHandler(checkout *services.CheckoutService, render *render.Render, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, render: render, logger: logger}
}

func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Order(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

// Orders lists the orders placed from the current cart session.
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.checkout.OrdersForCart(r.Context(), helpers.CartIDFromContext(r.Context()))
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
