package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-storefront-cart/app/helpers"
	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// CartStoreProvider builds the cart store for the session behind a request.
// The store is returned unloaded.
type CartStoreProvider func(w http.ResponseWriter, r *http.Request) *services.CartStore

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrDiscountRejected),
		errors.Is(err, services.ErrUnknownShippingTier),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, calc.ErrInvalidDiscountKind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(rd *render.Render, logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = rd.JSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: helpers.FormatValidationErrors(validationErrs),
		})
		return
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		_ = rd.JSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	_ = rd.JSON(w, status, errorResponse{Error: err.Error()})
}

func badRequest(rd *render.Render, w http.ResponseWriter, err error) {
	_ = rd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// persistWarning turns a failed write into a warning for the shopper; the
// mutation itself has been applied for this response.
func persistWarning(err error) (string, error) {
	if errors.Is(err, services.ErrPersist) {
		return "Your cart could not be saved and may be lost when you leave.", nil
	}
	return "", err
}
