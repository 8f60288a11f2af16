package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null;size:200" json:"name"`
	Active    bool           `gorm:"default:true" json:"active"`
	Contracts []Contract     `gorm:"foreignKey:EmployeeID" json:"contracts,omitempty"`
}
