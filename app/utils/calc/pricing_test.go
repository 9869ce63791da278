package calc

import (
	"testing"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, price string, qty int) models.LineItem {
	return models.LineItem{ProductID: models.ProductID(id), UnitPrice: dec(price), Quantity: qty}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCalculate_TaxOnPostDiscountBase(t *testing.T) {
	items := []models.LineItem{item("a", "100", 1)}
	discount := &models.Discount{Kind: models.DiscountPercentage, Value: dec("10")}

	got, err := Calculate(items, discount, dec("5"), dec("0.08"))
	require.NoError(t, err)

	assertAmount(t, "100", got.Subtotal, "subtotal")
	assertAmount(t, "10", got.DiscountAmount, "discount")
	assertAmount(t, "90", got.TaxableBase(), "taxable base")
	assertAmount(t, "7.20", got.TaxAmount, "tax")
	assertAmount(t, "5", got.ShippingCost, "shipping")
	assertAmount(t, "102.20", got.Total, "total")
}

func TestCalculate_CartScenario(t *testing.T) {
	items := []models.LineItem{item("A", "20", 1), item("B", "30", 2)}
	discount := &models.Discount{Kind: models.DiscountPercentage, Value: dec("10")}

	got, err := Calculate(items, discount, decimal.Zero, dec("0.08"))
	require.NoError(t, err)

	assertAmount(t, "80", got.Subtotal, "subtotal")
	assertAmount(t, "8", got.DiscountAmount, "discount")
	assertAmount(t, "72", got.TaxableBase(), "taxable base")
	assertAmount(t, "5.76", got.TaxAmount, "tax")
	assertAmount(t, "77.76", got.Total, "total")
}

func TestCalculate_FixedDiscountClampedToSubtotal(t *testing.T) {
	items := []models.LineItem{item("a", "12.50", 2)}
	discount := &models.Discount{Kind: models.DiscountFixed, Value: dec("40")}

	got, err := Calculate(items, discount, dec("4.99"), dec("0.08"))
	require.NoError(t, err)

	assertAmount(t, "25", got.DiscountAmount, "discount")
	assert.True(t, got.DiscountAmount.Equal(got.Subtotal))
	assertAmount(t, "0", got.TaxableBase(), "taxable base")
	assertAmount(t, "0", got.TaxAmount, "tax")
	assertAmount(t, "4.99", got.Total, "total")
}

func TestCalculate_NegativeDiscountIgnored(t *testing.T) {
	items := []models.LineItem{item("a", "10", 1)}
	discount := &models.Discount{Kind: models.DiscountFixed, Value: dec("-5")}

	got, err := Calculate(items, discount, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assertAmount(t, "0", got.DiscountAmount, "discount")
	assertAmount(t, "10", got.Total, "total")
}

func TestCalculate_EmptyItemsKeepShipping(t *testing.T) {
	got, err := Calculate(nil, nil, dec("15"), dec("0.08"))
	require.NoError(t, err)

	assertAmount(t, "0", got.Subtotal, "subtotal")
	assertAmount(t, "0", got.DiscountAmount, "discount")
	assertAmount(t, "0", got.TaxAmount, "tax")
	assertAmount(t, "15", got.ShippingCost, "shipping")
	assertAmount(t, "15", got.Total, "total")
}

func TestCalculate_TotalFlooredAtZero(t *testing.T) {
	items := []models.LineItem{item("a", "10", 1)}

	got, err := Calculate(items, nil, dec("-50"), decimal.Zero)
	require.NoError(t, err)

	assertAmount(t, "0", got.Total, "total")
}

func TestCalculate_InvalidDiscountKind(t *testing.T) {
	items := []models.LineItem{item("a", "10", 1)}
	discount := &models.Discount{Kind: "bogo", Value: dec("1")}

	_, err := Calculate(items, discount, decimal.Zero, dec("0.08"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDiscountKind)

	var kindErr *InvalidDiscountKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, models.DiscountKind("bogo"), kindErr.Kind)
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []models.LineItem{item("a", "19.99", 3), item("b", "0.35", 7)}
	discount := &models.Discount{Kind: models.DiscountPercentage, Value: dec("15")}

	first, err := Calculate(items, discount, dec("5"), dec("0.0725"))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Calculate(items, discount, dec("5"), dec("0.0725"))
		require.NoError(t, err)
		assert.Equal(t, first.Total.String(), again.Total.String())
		assert.Equal(t, first.TaxAmount.String(), again.TaxAmount.String())
		assert.Equal(t, first.DiscountAmount.String(), again.DiscountAmount.String())
	}
}

func TestCalculate_DoesNotMutateItems(t *testing.T) {
	items := []models.LineItem{item("a", "19.99", 3)}
	discount := &models.Discount{Kind: models.DiscountFixed, Value: dec("100")}

	_, err := Calculate(items, discount, dec("5"), dec("0.08"))
	require.NoError(t, err)

	assertAmount(t, "19.99", items[0].UnitPrice, "unit price")
	assert.Equal(t, 3, items[0].Quantity)
}
