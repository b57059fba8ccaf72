package model

import (
	"time"
)

type ProductSupplyRequest struct {
	ID             uint      `gorm:"primarykey" json:"id"`                     // request number
	ManagerID      uint      `gorm:"not null;index" json:"manager_id"`         // requesting manager
	WarehouseID    uint      `gorm:"not null;index" json:"warehouse_id"`       // source warehouse
	StoreID        uint      `gorm:"not null;index" json:"store_id"`           // destination store
	ProductName    string    `gorm:"type:varchar(30);not null" json:"product_name"`
	UnitsRequested int       `gorm:"not null;check:chk_supply_units,units_requested > 0" json:"units_requested"`
	RequestedAt    time.Time `gorm:"autoCreateTime;not null" json:"requested_at"`
}

func (ProductSupplyRequest) TableName() string {
	return "product_supply_requests"
}
