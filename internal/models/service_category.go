package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory is the seeded catalog behind quick-service items.
type ServiceCategory struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null;unique"`
	Description string          `gorm:"size:255"`
	BasePrice   decimal.Decimal `gorm:"type:numeric;not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
