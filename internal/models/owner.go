package models

import "time"

// Owner is a customer who brings in one or more cars.
type Owner struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:20;not null"`
	Email     string `gorm:"size:120"`
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cars         []Car         `gorm:"constraint:OnDelete:CASCADE"`
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}
