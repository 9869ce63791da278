package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartStorage {
	return &cartRepository{db}
}

func (r *cartRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Value, true, nil
}

func (r *cartRepository) Set(ctx context.Context, key, value string) error {
	record := models.CartRecord{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}

func (r *cartRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&models.CartRecord{}).Error
}
