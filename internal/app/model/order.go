package model

import (
	"time"
)

type Order struct {
	ID           uint      `gorm:"primarykey" json:"id"`                           // order number
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`              // ordering user
	StoreID      uint      `gorm:"not null;index" json:"store_id"`                 // store ordered from
	ProductName  string    `gorm:"type:varchar(30);not null" json:"product_name"`  // product at that store
	UnitsOrdered int       `gorm:"not null" json:"units_ordered"`                  // quantity
	OrderTime    time.Time `gorm:"autoCreateTime;not null;index" json:"order_time"` // set at insert

	Customer *User  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Store    *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
