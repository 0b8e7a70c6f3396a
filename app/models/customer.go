package models

import "gorm.io/gorm"

// Customer is a registered shopper.
type Customer struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"             json:"name"`
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	PhoneNumber string `gorm:"size:50"                       json:"phoneNumber"`
	Address     string `gorm:"type:text"                     json:"address"`
}
