package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeInvoice TransactionType = "invoice" // increases what the owner owes
	TransactionTypePayment TransactionType = "payment" // decreases what the owner owes
)

// Transaction is an append-only ledger entry. Invoice transactions are
// created by job completion with the job's total cost at that moment;
// they are never recomputed afterwards.
type Transaction struct {
	ID           uint            `gorm:"primaryKey"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null"`
	Type         TransactionType `gorm:"size:20;not null"`
	Description  string          `gorm:"size:200"`
	Date         time.Time       `gorm:"index;not null"`
	OwnerID      uint            `gorm:"index;not null"`
	ServiceJobID *uint           `gorm:"index"`
	CreatedAt    time.Time
}
