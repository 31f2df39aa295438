package entity

import (
	"gorm.io/gorm"
)

// One live cart per (user, restaurant) pair; created lazily on first add and
// deleted when its last item goes.
type Cart struct {
	gorm.Model
	UserID       uint       `gorm:"uniqueIndex:idx_cart_owner_restaurant" json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `gorm:"uniqueIndex:idx_cart_owner_restaurant" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
