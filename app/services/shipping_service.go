package services

import (
	"fmt"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
)

func DefaultShippingTiers() []models.ShippingTier {
	return []models.ShippingTier{
		{Code: "standard", Name: "Standard (3-5 days)", Cost: decimal.RequireFromString("5.00")},
		{Code: "express", Name: "Express (1-2 days)", Cost: decimal.RequireFromString("15.00")},
		{Code: "pickup", Name: "Store pickup", Cost: decimal.Zero},
	}
}

type ShippingService struct {
	tiers []models.ShippingTier
}

func NewShippingService(tiers []models.ShippingTier) *ShippingService {
	return &ShippingService{tiers: tiers}
}

func (s *ShippingService) Tiers() []models.ShippingTier {
	tiers := make([]models.ShippingTier, len(s.tiers))
	copy(tiers, s.tiers)
	return tiers
}

// Cost returns the flat fee of a tier. An empty code means no tier has been
// picked yet and costs nothing.
func (s *ShippingService) Cost(code string) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	for _, tier := range s.tiers {
		if tier.Code == code {
			return tier.Cost, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownShippingTier, code)
}
