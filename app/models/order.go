package models

import "gorm.io/gorm"

// OrderStatusProcess is the status every new order starts with.
const OrderStatusProcess = "Process"

// Order records one checkout of one product by one customer.
type Order struct {
	gorm.Model
	CustomerID uint      `gorm:"not null;index"                  json:"customer_id"`
	ProductID  uint      `gorm:"not null;index"                  json:"product_id"`
	Status     string    `gorm:"size:50;not null;default:Process" json:"status"`
	Customer   *Customer `json:"customer,omitempty"`
	Product    *Product  `json:"product,omitempty"`
}
