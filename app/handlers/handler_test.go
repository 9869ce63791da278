package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Rakhulsr/go-storefront-cart/app/services"
	"github.com/Rakhulsr/go-storefront-cart/app/utils/calc"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: x", services.ErrProductNotFound), http.StatusNotFound},
		{services.ErrOrderNotFound, http.StatusNotFound},
		{services.ErrEmptyCart, http.StatusUnprocessableEntity},
		{services.ErrDiscountRejected, http.StatusUnprocessableEntity},
		{services.ErrUnknownShippingTier, http.StatusUnprocessableEntity},
		{services.ErrInsufficientStock, http.StatusUnprocessableEntity},
		{&calc.InvalidDiscountKindError{Kind: "bogo"}, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestPersistWarning(t *testing.T) {
	warning, err := persistWarning(fmt.Errorf("%w: quota", services.ErrPersist))
	assert.NoError(t, err)
	assert.NotEmpty(t, warning)

	warning, err = persistWarning(nil)
	assert.NoError(t, err)
	assert.Empty(t, warning)

	_, err = persistWarning(services.ErrInvalidInput)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
