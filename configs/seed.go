package configs

import (
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Usserslalo/delixmi-backend-sub003/entity"
)

// SeedAdmin creates the first admin user when ADMIN_EMAIL/ADMIN_PASSWORD are set.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedLookups inserts the status lookup rows.
func SeedLookups() error {
	db := DB()

	for _, name := range []string{"Open", "Closed"} {
		if err := db.FirstOrCreate(&entity.RestaurantStatus{}, entity.RestaurantStatus{StatusName: name}).Error; err != nil {
			return err
		}
	}

	log.Println("lookup tables seeded")
	return nil
}

// SeedDemo loads a demo restaurant with configurable products so a fresh
// checkout can be exercised end to end. Idempotent: keyed on names.
func SeedDemo() error {
	db := DB()

	var open entity.RestaurantStatus
	if err := db.Where("status_name = ?", "Open").First(&open).Error; err != nil {
		return err
	}

	var rest entity.Restaurant
	if err := db.FirstOrCreate(&rest, entity.Restaurant{
		Name:               "Delixmi Pizzeria",
		Address:            "Av. Centro 12",
		RestaurantStatusID: open.ID,
	}).Error; err != nil {
		return err
	}

	var size entity.ModifierGroup
	if err := db.FirstOrCreate(&size, entity.ModifierGroup{
		Name: "Size", MinSelect: 1, MaxSelect: 1,
	}).Error; err != nil {
		return err
	}
	if err := db.FirstOrCreate(&entity.ModifierOption{}, entity.ModifierOption{
		ModifierGroupID: size.ID, Name: "Medium", PriceDelta: decimal.Zero, IsAvailable: true,
	}).Error; err != nil {
		return err
	}
	if err := db.FirstOrCreate(&entity.ModifierOption{}, entity.ModifierOption{
		ModifierGroupID: size.ID, Name: "Large", PriceDelta: decimal.RequireFromString("35.00"), IsAvailable: true, SortOrder: 1,
	}).Error; err != nil {
		return err
	}

	var toppings entity.ModifierGroup
	if err := db.FirstOrCreate(&toppings, entity.ModifierGroup{
		Name: "Extra toppings", MinSelect: 0, MaxSelect: 3, SortOrder: 1,
	}).Error; err != nil {
		return err
	}
	if err := db.FirstOrCreate(&entity.ModifierOption{}, entity.ModifierOption{
		ModifierGroupID: toppings.ID, Name: "Extra cheese", PriceDelta: decimal.RequireFromString("25.50"), IsAvailable: true,
	}).Error; err != nil {
		return err
	}
	if err := db.FirstOrCreate(&entity.ModifierOption{}, entity.ModifierOption{
		ModifierGroupID: toppings.ID, Name: "Mushrooms", PriceDelta: decimal.RequireFromString("18.00"), IsAvailable: true, SortOrder: 1,
	}).Error; err != nil {
		return err
	}

	var pizza entity.Product
	if err := db.FirstOrCreate(&pizza, entity.Product{
		Name: "Pizza Margarita", BasePrice: decimal.RequireFromString("100.00"),
		IsAvailable: true, RestaurantID: rest.ID,
	}).Error; err != nil {
		return err
	}

	for i, g := range []entity.ModifierGroup{size, toppings} {
		if err := db.FirstOrCreate(&entity.ProductModifierGroup{}, entity.ProductModifierGroup{
			ProductID: pizza.ID, ModifierGroupID: g.ID, SortOrder: i,
		}).Error; err != nil {
			return err
		}
	}

	log.Println("demo catalog seeded")
	return nil
}
