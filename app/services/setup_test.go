package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/models/migrations"
	"github.com/Rakhulsr/go-storefront-cart/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	products repositories.ProductRepositoryImpl
	orders   repositories.OrderRepository
	codes    repositories.DiscountRepository
	discount *DiscountService
	checkout *CheckoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))

	f := &fixture{
		db:       db,
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
		codes:    repositories.NewDiscountRepository(db),
	}
	f.discount = NewDiscountService(f.codes, validator.New())
	f.checkout = NewCheckoutService(db, f.orders, f.products, f.discount,
		NewShippingService(DefaultShippingTiers()), decimal.RequireFromString("0.08"), nil, nil)
	return f
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	p := &models.Product{Name: name, Slug: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, f.products.Create(context.Background(), p))
	return *p
}

func (f *fixture) addCode(t *testing.T, code models.DiscountCode) {
	t.Helper()
	require.NoError(t, f.codes.Create(context.Background(), &code))
}

func (f *fixture) mustFirstOrder(t *testing.T, cartID string) models.Order {
	t.Helper()
	orders, err := f.checkout.OrdersForCart(context.Background(), cartID)
	require.NoError(t, err)
	require.NotEmpty(t, orders)
	return orders[0]
}
