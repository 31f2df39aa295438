package entity

import (
	"gorm.io/gorm"
)

type RestaurantStatus struct {
	gorm.Model
	StatusName string `gorm:"size:100;uniqueIndex;not null" json:"statusName"`

	Restaurants []Restaurant `json:"-"`
}
