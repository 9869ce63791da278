package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type DiscountService struct {
	repo     repositories.DiscountRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewDiscountService(repo repositories.DiscountRepository, validate *validator.Validate) *DiscountService {
	return &DiscountService{repo: repo, validate: validate, now: time.Now}
}

func NormalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate resolves a raw code. Unknown, disabled, expired or malformed
// codes come back with Valid == false and a message for the shopper; only
// repository failures are returned as errors.
func (s *DiscountService) Validate(ctx context.Context, code string) (models.DiscountValidation, error) {
	code = NormalizeDiscountCode(code)
	result := models.DiscountValidation{Code: code, Value: decimal.Zero}

	if code == "" {
		result.Message = "Enter a discount code."
		return result, nil
	}

	discount, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return result, fmt.Errorf("failed to look up discount code: %w", err)
	}
	if discount == nil {
		result.Message = "This discount code does not exist."
		return result, nil
	}
	if discount.Disabled {
		result.Message = "This discount code is no longer active."
		return result, nil
	}
	if discount.ExpiresAt != nil && !s.now().Before(*discount.ExpiresAt) {
		result.Message = "This discount code has expired."
		return result, nil
	}
	if err := s.CheckRule(*discount); err != nil {
		result.Message = "This discount code cannot be applied."
		return result, nil
	}

	result.Valid = true
	result.Kind = discount.Kind
	result.Value = discount.Value
	if discount.Kind == models.DiscountPercentage {
		result.Message = fmt.Sprintf("%s%% off your order.", discount.Value.String())
	} else {
		result.Message = fmt.Sprintf("%s off your order.", discount.Value.StringFixed(2))
	}
	return result, nil
}

// CheckRule rejects codes whose stored rule the pricing pipeline could not
// apply sensibly.
func (s *DiscountService) CheckRule(discount models.DiscountCode) error {
	if err := s.validate.Struct(discount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if discount.Value.IsNegative() {
		return fmt.Errorf("%w: discount value cannot be negative", ErrInvalidInput)
	}
	if discount.Kind == models.DiscountPercentage && discount.Value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percentage must be 0-100", ErrInvalidInput)
	}
	return nil
}
