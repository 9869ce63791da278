package seeders

import (
	"github.com/Rakhulsr/go-storefront-cart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Seeder struct {
	Seeder interface{}
	// Where identifies an existing row so seeding can be repeated.
	Where map[string]interface{}
}

func demoProducts() []*models.Product {
	return []*models.Product{
		{Name: "Canvas Tote Bag", Slug: "canvas-tote-bag", Description: "Heavy cotton tote with inner pocket.", ImageURL: "/images/products/tote.jpg", Price: decimal.RequireFromString("20.00"), Stock: 50},
		{Name: "Ceramic Mug", Slug: "ceramic-mug", Description: "350ml stoneware mug.", ImageURL: "/images/products/mug.jpg", Price: decimal.RequireFromString("12.50"), Stock: 120},
		{Name: "Wool Beanie", Slug: "wool-beanie", Description: "Merino blend, one size.", ImageURL: "/images/products/beanie.jpg", Price: decimal.RequireFromString("30.00"), Stock: 25},
		{Name: "Notebook A5", Slug: "notebook-a5", Description: "Dot grid, 160 pages.", ImageURL: "/images/products/notebook.jpg", Price: decimal.RequireFromString("8.99"), Stock: 200},
	}
}

func demoDiscountCodes() []*models.DiscountCode {
	return []*models.DiscountCode{
		{Code: "SAVE10", Kind: models.DiscountPercentage, Value: decimal.NewFromInt(10)},
		{Code: "FLAT5", Kind: models.DiscountFixed, Value: decimal.NewFromInt(5)},
	}
}

func SeedersRegister() []Seeder {
	var seeders []Seeder
	for _, p := range demoProducts() {
		seeders = append(seeders, Seeder{Seeder: p, Where: map[string]interface{}{"slug": p.Slug}})
	}
	for _, d := range demoDiscountCodes() {
		seeders = append(seeders, Seeder{Seeder: d, Where: map[string]interface{}{"code": d.Code}})
	}
	return seeders
}

// DBSeed inserts the demo catalog and discount codes, skipping rows that
// already exist.
func DBSeed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, seeder := range SeedersRegister() {
			if err := tx.Where(seeder.Where).FirstOrCreate(seeder.Seeder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
