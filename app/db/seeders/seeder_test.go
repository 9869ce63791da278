package seeders

import (
	"testing"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/models/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDBSeedIsRepeatable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))

	require.NoError(t, DBSeed(db))
	require.NoError(t, DBSeed(db))

	var products, codes int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.DiscountCode{}).Count(&codes).Error)
	assert.EqualValues(t, len(demoProducts()), products)
	assert.EqualValues(t, len(demoDiscountCodes()), codes)

	var save10 models.DiscountCode
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&save10).Error)
	assert.Equal(t, models.DiscountPercentage, save10.Kind)
}
