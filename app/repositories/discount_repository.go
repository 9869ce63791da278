package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	FindByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	Create(ctx context.Context, code *models.DiscountCode) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db}
}

func (r *discountRepository) FindByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Create(ctx context.Context, code *models.DiscountCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}
