package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `gorm:"uniqueIndex:idx_item_identity" json:"cartId"`
	Cart   Cart `json:"-"`

	ProductID uint    `gorm:"uniqueIndex:idx_item_identity" json:"productId"`
	Product   Product `json:"-"`

	Quantity int `json:"quantity"`

	// Unit price frozen at creation time; never recomputed on quantity change.
	PriceAtAdd decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceAtAdd"`

	// Sorted selected option ids joined with ",". Part of the identity index so
	// the losing side of a concurrent identical add fails on the constraint and
	// can be retried as a merge.
	SelectionsKey string `gorm:"size:512;uniqueIndex:idx_item_identity" json:"-"`

	Selections []CartItemSelection `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"selections"`
}
