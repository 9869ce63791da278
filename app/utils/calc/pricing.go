// Package calc is the pricing pipeline shared by the cart preview, the
// checkout quote and placed orders.
package calc

import (
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
)

func Subtotal(items []models.LineItem) decimal.Decimal {
	return models.CartState{Items: items}.Subtotal().Round(2)
}

// Calculate prices a snapshot of line items. The discount is taken off the
// subtotal only, tax is charged on the post-discount amount and shipping is
// added untaxed. A nil discount means none was applied.
func Calculate(items []models.LineItem, discount *models.Discount, shippingCost, taxRate decimal.Decimal) (models.PricingBreakdown, error) {
	subtotal := Subtotal(items)

	discountAmount, err := CalculateDiscount(subtotal, discount)
	if err != nil {
		return models.PricingBreakdown{}, err
	}

	taxAmount := CalculateTax(subtotal.Sub(discountAmount), taxRate)
	shippingCost = shippingCost.Round(2)

	return models.PricingBreakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		ShippingCost:   shippingCost,
		TaxAmount:      taxAmount,
		Total:          CalculateGrandTotal(subtotal, discountAmount, shippingCost, taxAmount),
	}, nil
}
