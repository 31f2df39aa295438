package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ModifierOption struct {
	gorm.Model
	ModifierGroupID uint
	ModifierGroup   ModifierGroup
	Name            string
	PriceDelta      decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsAvailable     bool            `gorm:"default:true"`
	SortOrder       int
}
