package models

import "time"

type JobStatus string

const (
	JobStatusQuoted     JobStatus = "quoted"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed" // terminal, no reopen
)

// ServiceJob is one visit/work order for a single car.
type ServiceJob struct {
	ID         uint       `gorm:"primaryKey"`
	DateIn     time.Time  `gorm:"index;not null"`
	DateOut    *time.Time `gorm:"index"`
	MileageIn  int        `gorm:"not null"`
	MileageOut *int
	Status     JobStatus `gorm:"size:20;not null;default:in_progress"`
	Notes      string    `gorm:"size:500"`
	CarID      uint      `gorm:"index;not null"`
	Car        Car
	CreatedAt  time.Time
	UpdatedAt  time.Time

	ServiceItems []ServiceItem `gorm:"constraint:OnDelete:CASCADE"`
}
