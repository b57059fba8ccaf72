package model

import (
	"time"
)

type UserRole string // account type stored in users.role

const (
	RoleCustomer UserRole = "customer" // browses stores and places orders
	RoleManager  UserRole = "manager"  // manages products at own stores
	RoleAdmin    UserRole = "admin"    // edits users and any store's products
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // user ID
	Name         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`       // login name, unique
	PasswordHash string    `gorm:"not null" json:"-"`                                       // bcrypt hash
	Latitude     float64   `gorm:"not null" json:"latitude"`                                // decimal degrees
	Longitude    float64   `gorm:"not null" json:"longitude"`                               // decimal degrees
	Role         UserRole  `gorm:"type:varchar(20);default:'customer';not null" json:"role"` // account type
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
