package calc

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidDiscountKind = errors.New("invalid discount kind")

type InvalidDiscountKindError struct {
	Kind models.DiscountKind
}

func (e *InvalidDiscountKindError) Error() string {
	return fmt.Sprintf("invalid discount kind %q", string(e.Kind))
}

func (e *InvalidDiscountKindError) Is(target error) bool {
	return target == ErrInvalidDiscountKind
}

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(subtotal decimal.Decimal, discount *models.Discount) (decimal.Decimal, error) {
	if discount == nil {
		return decimal.Zero, nil
	}

	var amount decimal.Decimal
	switch discount.Kind {
	case models.DiscountPercentage:
		amount = subtotal.Mul(discount.Value).Div(hundred)
	case models.DiscountFixed:
		amount = discount.Value
	default:
		return decimal.Zero, &InvalidDiscountKindError{Kind: discount.Kind}
	}

	// never below zero, never more than the subtotal
	amount = decimal.Max(amount, decimal.Zero)
	amount = decimal.Min(amount, decimal.Max(subtotal, decimal.Zero))

	return amount.Round(2), nil
}
