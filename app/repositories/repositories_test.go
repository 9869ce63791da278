package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/Rakhulsr/go-storefront-cart/app/models/migrations"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func exerciseCartStorage(t *testing.T, storage CartStorage) {
	t.Helper()
	ctx := context.Background()
	key := CartKey("abc")

	_, found, err := storage.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Set(ctx, key, `[]`))
	require.NoError(t, storage.Set(ctx, key, `[{"productId":"p1","unitPrice":"2","quantity":1}]`))

	value, found, err := storage.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"productId":"p1","unitPrice":"2","quantity":1}]`, value)

	require.NoError(t, storage.Delete(ctx, key))
	_, found, err = storage.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Delete(ctx, key), "deleting a missing key is not an error")
}

func TestCartRepository_GORM(t *testing.T) {
	exerciseCartStorage(t, NewCartRepository(newTestDB(t)))
}

func TestCartRepository_Memory(t *testing.T) {
	exerciseCartStorage(t, NewMemoryCartRepository())
}

func TestCartRepository_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseCartStorage(t, NewRedisCartRepository(client, time.Hour))
}

func TestCartRepository_RedisTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storage := NewRedisCartRepository(client, time.Hour)
	require.NoError(t, storage.Set(context.Background(), CartKey("ttl"), `[]`))
	assert.Equal(t, time.Hour, mr.TTL(CartKey("ttl")))

	mr.FastForward(2 * time.Hour)
	_, found, err := storage.Get(context.Background(), CartKey("ttl"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestDB(t))

	product := &models.Product{Name: "Mug", Slug: "mug", Price: decimal.RequireFromString("12.50"), Stock: 3}
	require.NoError(t, repo.Create(ctx, product))
	require.NotEmpty(t, product.ID)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mug", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")))

	bySlug, err := repo.GetBySlug(ctx, "mug")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, product.ID, bySlug.ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.GetProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	order := &models.Order{
		CartID:     "cart-1",
		OrderCode:  "INV-20260101-abcdef12",
		OrderDate:  time.Now(),
		Subtotal:   decimal.NewFromInt(40),
		GrandTotal: decimal.RequireFromString("43.20"),
		Status:     models.OrderStatusPending,
		OrderItems: []models.OrderItem{
			{ProductID: "p1", ProductName: "Mug", Qty: 2, Price: decimal.NewFromInt(20), LineTotal: decimal.NewFromInt(40)},
		},
	}
	require.NoError(t, repo.Create(ctx, db, order))

	got, err := repo.FindByCode(ctx, "INV-20260101-abcdef12")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.OrderItems, 1)
	assert.Equal(t, 2, got.OrderItems[0].Qty)
	assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString("43.20")))

	require.NoError(t, repo.UpdateStatus(ctx, got.ID, models.OrderStatusShipped))
	byCart, err := repo.FindByCartID(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, byCart, 1)
	assert.Equal(t, models.OrderStatusShipped, byCart[0].Status)

	missing, err := repo.FindByCode(ctx, "INV-missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDiscountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDiscountRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &models.DiscountCode{Code: "SAVE10", Kind: models.DiscountPercentage, Value: decimal.NewFromInt(10)}))

	got, err := repo.FindByCode(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.DiscountPercentage, got.Kind)

	missing, err := repo.FindByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
