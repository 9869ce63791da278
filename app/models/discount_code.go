package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountCode struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Code      string          `gorm:"size:64;not null;uniqueIndex" validate:"required,max=64"`
	Kind      DiscountKind    `gorm:"size:20;not null" validate:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Disabled  bool
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *DiscountCode) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}

func (d DiscountCode) Discount() Discount {
	return Discount{Kind: d.Kind, Value: d.Value}
}

// DiscountValidation is what the validation collaborator hands back for a
// raw code. Only Kind and Value ever reach the pricing pipeline.
type DiscountValidation struct {
	Code    string          `json:"code"`
	Valid   bool            `json:"valid"`
	Kind    DiscountKind    `json:"kind,omitempty"`
	Value   decimal.Decimal `json:"value"`
	Message string          `json:"message"`
}

// Discount returns the resolved rule, or nil when the code was rejected.
func (v DiscountValidation) Discount() *Discount {
	if !v.Valid {
		return nil
	}
	return &Discount{Kind: v.Kind, Value: v.Value}
}
