package entity

type ProductModifierGroup struct {
	ProductID       uint `gorm:"primaryKey" json:"productId"`
	ModifierGroupID uint `gorm:"primaryKey" json:"modifierGroupId"`
	SortOrder       int  `gorm:"not null;default:0" json:"sortOrder"`
}
