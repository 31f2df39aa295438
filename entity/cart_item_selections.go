package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Created atomically with its parent CartItem and immutable afterwards;
// reconfiguring means remove + re-add.
type CartItemSelection struct {
	gorm.Model
	CartItemID uint     `json:"cartItemId"`
	CartItem   CartItem `json:"-"`

	ModifierGroupID  uint           `json:"modifierGroupId"`
	ModifierGroup    ModifierGroup  `json:"-"`
	ModifierOptionID uint           `json:"modifierOptionId"`
	ModifierOption   ModifierOption `json:"-"`

	PriceDelta decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceDelta"`
}
