package model

import (
	"time"
)

// Product is one line of a store's inventory. The key is (store_id, product_name);
// the same product name at two stores is two rows with independent counts and prices.
type Product struct {
	StoreID       uint      `gorm:"primaryKey;autoIncrement:false" json:"store_id"`
	ProductName   string    `gorm:"primaryKey;type:varchar(30)" json:"product_name"`
	NumberOfUnits int       `gorm:"not null;default:0;check:chk_products_units,number_of_units >= 0" json:"number_of_units"`
	PricePerUnit  float64   `gorm:"not null;default:0;check:chk_products_price,price_per_unit >= 0" json:"price_per_unit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
