package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountService_Validate(t *testing.T) {
	f := newFixture(t)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	f.addCode(t, models.DiscountCode{Code: "SAVE10", Kind: models.DiscountPercentage, Value: decimal.NewFromInt(10), ExpiresAt: &future})
	f.addCode(t, models.DiscountCode{Code: "FLAT5", Kind: models.DiscountFixed, Value: decimal.NewFromInt(5)})
	f.addCode(t, models.DiscountCode{Code: "OLD", Kind: models.DiscountFixed, Value: decimal.NewFromInt(5), ExpiresAt: &past})
	f.addCode(t, models.DiscountCode{Code: "OFF", Kind: models.DiscountFixed, Value: decimal.NewFromInt(5), Disabled: true})
	f.addCode(t, models.DiscountCode{Code: "TOOMUCH", Kind: models.DiscountPercentage, Value: decimal.NewFromInt(150)})
	f.addCode(t, models.DiscountCode{Code: "WEIRD", Kind: "bogo", Value: decimal.NewFromInt(1)})

	cases := []struct {
		code  string
		valid bool
		kind  models.DiscountKind
	}{
		{" save10 ", true, models.DiscountPercentage},
		{"FLAT5", true, models.DiscountFixed},
		{"OLD", false, ""},
		{"OFF", false, ""},
		{"TOOMUCH", false, ""},
		{"WEIRD", false, ""},
		{"MISSING", false, ""},
		{"", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, err := f.discount.Validate(context.Background(), tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.valid, got.Valid)
			assert.Equal(t, tc.kind, got.Kind)
			assert.NotEmpty(t, got.Message)
			if tc.valid {
				require.NotNil(t, got.Discount())
			} else {
				assert.Nil(t, got.Discount())
			}
		})
	}
}
