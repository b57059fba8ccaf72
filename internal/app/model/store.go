package model

import (
	"time"
)

type Store struct {
	ID              uint      `gorm:"primarykey" json:"id"`                  // store ID
	Name            string    `gorm:"type:varchar(30)" json:"name"`          // display name
	ManagerID       uint      `gorm:"not null;index" json:"manager_id"`      // managing user
	Manager         *User     `gorm:"foreignKey:ManagerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"manager,omitempty"`
	Latitude        float64   `gorm:"not null" json:"latitude"`              // decimal degrees
	Longitude       float64   `gorm:"not null" json:"longitude"`             // decimal degrees
	DateEstablished time.Time `gorm:"type:date" json:"date_established"`     // opening date
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
