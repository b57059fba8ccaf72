package model

type Warehouse struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Area      float64 `json:"area"` // floor area in square feet
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}
