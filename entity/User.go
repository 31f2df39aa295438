package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"size:50;default:customer" json:"role"`

	Carts []Cart `json:"-"`
}
