package model

import (
	"time"
)

// ProductUpdate is the audit trail of product mutations. Rows are only ever inserted.
type ProductUpdate struct {
	ID          uint      `gorm:"primarykey" json:"id"`                          // update number
	ManagerID   uint      `gorm:"not null;index" json:"manager_id"`              // acting manager or admin
	StoreID     uint      `gorm:"not null;index" json:"store_id"`
	ProductName string    `gorm:"type:varchar(30);not null" json:"product_name"` // name after the mutation
	UpdatedOn   time.Time `gorm:"autoCreateTime;not null;index" json:"updated_on"`
}

func (ProductUpdate) TableName() string {
	return "product_updates"
}
