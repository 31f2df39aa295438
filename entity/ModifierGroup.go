package entity

import (
	"gorm.io/gorm"
)

// A group is required iff MinSelect > 0.
type ModifierGroup struct {
	gorm.Model
	Name      string `json:"name"`
	MinSelect int    `json:"minSelect"`
	MaxSelect int    `json:"maxSelect"`
	SortOrder int    `json:"sortOrder"`

	// preload options often → keep
	Options []ModifierOption `json:"options"`

	Products []Product `gorm:"many2many:product_modifier_groups;" json:"-"`
}
