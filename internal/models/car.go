package models

import (
	"strings"
	"time"
)

type Car struct {
	ID           uint   `gorm:"primaryKey"`
	LicensePlate string `gorm:"size:20;uniqueIndex;not null"` // stored uppercased
	Make         string `gorm:"size:50;not null"`
	Model        string `gorm:"size:50;not null"`
	Year         int
	Color        string `gorm:"size:30"`
	VIN          string `gorm:"size:50"`
	OwnerID      uint   `gorm:"index;not null"`
	Owner        Owner
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ServiceJobs []ServiceJob `gorm:"constraint:OnDelete:CASCADE"`
}

// NormalizePlate uppercases and trims a license plate so that "ca123456"
// and "CA123456" are the same car.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
