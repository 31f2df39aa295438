package configs

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the database named by DB_DRIVER. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey on both drivers.
func ConnectionDB(cfg *Config) {
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "postgres":
		database, err = gorm.Open(postgres.Open(cfg.DBSource), gormCfg)
	default:
		database, err = gorm.Open(sqlite.Open(cfg.DBSource), gormCfg)
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = database
}

func SetupDatabase() {
	// The join model migrates first. Once the many2many pass on Product has
	// claimed the product_modifier_groups table name, the table is created
	// from the reference columns only and sort_order never materializes.
	if err := db.AutoMigrate(&entity.ProductModifierGroup{}); err != nil {
		log.Fatalf("migrate join tables failed: %v", err)
	}
	err := db.AutoMigrate(
		&entity.User{},
		&entity.RestaurantStatus{}, &entity.Restaurant{},
		&entity.Product{}, &entity.ModifierGroup{}, &entity.ModifierOption{},
		&entity.Cart{}, &entity.CartItem{}, &entity.CartItemSelection{},
	)
	if err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if !db.Migrator().HasColumn(&entity.ProductModifierGroup{}, "sort_order") {
		log.Fatal("product_modifier_groups migrated without sort_order")
	}
}
