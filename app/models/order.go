package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = 1
	OrderStatusProcessing = 2
	OrderStatusShipped    = 3
	OrderStatusCompleted  = 4
	OrderStatusCancelled  = 5
)

func OrderStatusName(status int) string {
	switch status {
	case OrderStatusPending:
		return "pending"
	case OrderStatusProcessing:
		return "processing"
	case OrderStatusShipped:
		return "shipped"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseOrderStatus is the inverse of OrderStatusName.
func ParseOrderStatus(name string) (int, bool) {
	for status := OrderStatusPending; status <= OrderStatusCancelled; status++ {
		if OrderStatusName(status) == name {
			return status, true
		}
	}
	return 0, false
}

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string    `gorm:"size:36;index" json:"-"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"orderCode"`
	OrderDate time.Time `gorm:"not null" json:"orderDate"`

	OrderItems     []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`
	DiscountCode   string          `gorm:"size:64" json:"discountCode,omitempty"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);" json:"discountAmount"`
	ShippingTier   string          `gorm:"size:50" json:"shippingTier,omitempty"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(16,2);" json:"shippingCost"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(10,4);" json:"taxRate"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);" json:"taxAmount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(16,2);" json:"total"`

	Status int `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o Order) Pricing() PricingBreakdown {
	return PricingBreakdown{
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		ShippingCost:   o.ShippingCost,
		TaxAmount:      o.TaxAmount,
		Total:          o.GrandTotal,
	}
}
