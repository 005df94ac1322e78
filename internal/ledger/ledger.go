package ledger

import (
	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Balance is the net amount an owner currently owes: the sum of invoice
// transactions minus the sum of payment transactions. An owner with no
// transactions owes zero.
func Balance(txns []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeInvoice:
			balance = balance.Add(t.Amount)
		case models.TransactionTypePayment:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// TotalCost sums the fixed items of a job. This is the amount invoiced
// at completion; pending estimates are excluded.
func TotalCost(items []models.ServiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.IsFixed {
			total = total.Add(it.Cost)
		}
	}
	return total
}

// QuotedCost sums all items of a job, fixed and pending alike.
func QuotedCost(items []models.ServiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Cost)
	}
	return total
}
