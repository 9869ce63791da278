package migrations

import (
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.DiscountCode{}, &models.CartRecord{}, &models.Order{}, &models.OrderItem{})
}
