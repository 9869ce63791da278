package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem keeps the price a line item was added at, not the catalog price
// at checkout time.
type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(255);not null;uniqueIndex" json:"-"`
	OrderID     string          `gorm:"type:varchar(255);not null;index" json:"-"`
	ProductID   string          `gorm:"type:varchar(255);not null;index" json:"productId"`
	ProductName string          `gorm:"type:varchar(255)" json:"name"`
	Qty         int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unitPrice"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"lineTotal"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func NewOrderItem(item LineItem) OrderItem {
	return OrderItem{
		ProductID:   item.ProductID.String(),
		ProductName: item.Name,
		Qty:         item.Quantity,
		Price:       item.UnitPrice,
		LineTotal:   item.LineTotal(),
	}
}
