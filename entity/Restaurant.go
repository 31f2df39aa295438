package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string
	Address     string
	Description string

	RestaurantStatusID uint
	RestaurantStatus   RestaurantStatus

	Products []Product
	Carts    []Cart
}
