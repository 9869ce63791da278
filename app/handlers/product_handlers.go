package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const defaultProductLimit = 50

type ProductHandler struct {
	repo   repositories.ProductRepositoryImpl
	render *render.Render
	logger *zap.Logger
}

func NewProductHandler(p repositories.ProductRepositoryImpl, r *render.Render, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{repo: p, render: r, logger: logger}
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	limit := defaultProductLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			_ = h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive number"})
			return
		}
		limit = n
	}

	products, err := h.repo.GetProducts(r.Context(), limit)
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// ProductDetail accepts either the product id or its slug.
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.repo.GetByID(r.Context(), id)
	if err == nil && product == nil {
		product, err = h.repo.GetBySlug(r.Context(), id)
	}
	if err != nil {
		writeError(h.render, h.logger, w, r, err)
		return
	}
	if product == nil {
		writeError(h.render, h.logger, w, r, services.ErrProductNotFound)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}
