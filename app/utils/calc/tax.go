package calc

import "github.com/shopspring/decimal"

var defaultTaxRate = decimal.RequireFromString("0.08")

func DefaultTaxRate() decimal.Decimal {
	return defaultTaxRate
}

// CalculateTax charges rate on the taxable base. Shipping is never part of
// the base.
func CalculateTax(taxableBase, rate decimal.Decimal) decimal.Decimal {
	return taxableBase.Mul(rate).Round(2)
}

func CalculateGrandTotal(subtotal, discountAmount, shippingCost, taxAmount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discountAmount).Add(shippingCost).Add(taxAmount)
	return decimal.Max(total, decimal.Zero).Round(2)
}
