package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceItem is one billable line within a job. IsFixed marks a firm
// charge; unfixed items are pending estimates and never invoiced.
type ServiceItem struct {
	ID           uint            `gorm:"primaryKey"`
	Description  string          `gorm:"size:200;not null"`
	Cost         decimal.Decimal `gorm:"type:numeric;not null"`
	IsFixed      bool            `gorm:"not null;default:false"`
	ServiceJobID uint            `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
