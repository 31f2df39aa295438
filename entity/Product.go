package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `json:"name"`
	Detail      string          `json:"detail"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"basePrice"`
	IsAvailable bool            `gorm:"default:true" json:"isAvailable"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload when the caller needs the store

	ModifierGroups []ModifierGroup `gorm:"many2many:product_modifier_groups;" json:"-"`
	CartItems      []CartItem      `json:"-"`
}
