package models

import "gorm.io/gorm"

// Category groups products.
type Category struct {
	gorm.Model
	Name     string    `gorm:"size:255;not null" json:"name"`
	Products []Product `json:"products,omitempty"`
}

// Product represents a product in the catalogue. Price is in the smallest
// currency unit (rupiah).
type Product struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Size        string    `gorm:"size:50"                 json:"size"`
	Stock       int       `gorm:"not null;default:0"      json:"stock"`
	Description string    `gorm:"type:text"               json:"description"`
	Price       int64     `gorm:"not null;default:0"      json:"price"`
	CategoryID  uint      `gorm:"index"                   json:"category_id"`
	ImageURL    string    `gorm:"size:512"                json:"image_url"`
	Category    *Category `json:"category,omitempty"`
}
