package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"garage-backend/internal/config"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Generator renders quotations, invoices and payment receipts as PDFs.
// Output is deterministic for a given snapshot: the embedded dates come
// from the job/transaction, not from the wall clock.
type Generator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

func (g *Generator) newPDF(docDate time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(docDate)
	pdf.SetModificationDate(docDate)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, g.cfg.GarageName, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, g.cfg.GarageAddress, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Tel: "+g.cfg.GaragePhone, "", 1, "C", false, 0, "")
		if g.cfg.GarageEmail != "" {
			pdf.CellFormat(0, 5, "Email: "+g.cfg.GarageEmail, "", 1, "C", false, 0, "")
		}
		pdf.Ln(2)
		pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
		pdf.Ln(4)
	})

	pdf.AddPage()
	return pdf
}

// Quotation lists every item with its Fixed/Pending status; the total is
// the quoted cost.
func (g *Generator) Quotation(job models.ServiceJob) ([]byte, string, error) {
	pdf := g.newPDF(job.DateIn)
	owner := job.Car.Owner
	car := job.Car

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "QUOTATION", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Customer & Vehicle Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Customer: "+owner.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+owner.Phone, "", 1, "L", false, 0, "")
	if owner.Email != "" {
		pdf.CellFormat(0, 6, "Email: "+owner.Email, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Vehicle: %s %s (%d)", car.Make, car.Model, car.Year), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "License Plate: "+car.LicensePlate, "", 1, "L", false, 0, "")
	vin := car.VIN
	if vin == "" {
		vin = "N/A"
	}
	pdf.CellFormat(0, 6, "VIN: "+vin, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date In: "+job.DateIn.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Mileage In: %s km", groupThousands(int64(job.MileageIn))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Proposed Services:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Cost (R)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range job.ServiceItems {
		status := "Pending"
		if item.IsFixed {
			status = "Fixed"
		}
		pdf.CellFormat(120, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, formatAmount(item.Cost), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "TOTAL QUOTATION:", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(ledger.QuotedCost(job.ServiceItems)), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Note: This is a quotation. Final invoice may vary based on actual work completed. Prices include VAT.", "", "L", false)

	out, err := render(pdf)
	name := fmt.Sprintf("quotation_%s_%s.pdf", car.LicensePlate, job.DateIn.Format("2006-01-02"))
	return out, name, err
}

// Invoice lists fixed items only; the total is the job's total cost.
func (g *Generator) Invoice(job models.ServiceJob) ([]byte, string, error) {
	docDate := job.DateIn
	if job.DateOut != nil {
		docDate = *job.DateOut
	}
	pdf := g.newPDF(docDate)
	owner := job.Car.Owner
	car := job.Car

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Customer & Vehicle Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Customer: "+owner.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+owner.Phone, "", 1, "L", false, 0, "")
	if owner.Email != "" {
		pdf.CellFormat(0, 6, "Email: "+owner.Email, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Vehicle: %s %s (%d)", car.Make, car.Model, car.Year), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "License Plate: "+car.LicensePlate, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date In: "+job.DateIn.Format("2006-01-02"), "", 1, "L", false, 0, "")
	if job.DateOut != nil {
		pdf.CellFormat(0, 6, "Date Out: "+job.DateOut.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Mileage In: %s km", groupThousands(int64(job.MileageIn))), "", 1, "L", false, 0, "")
	if job.MileageOut != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Mileage Out: %s km", groupThousands(int64(*job.MileageOut))), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Services Completed:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Cost (R)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range job.ServiceItems {
		if !item.IsFixed {
			continue
		}
		pdf.CellFormat(150, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, formatAmount(item.Cost), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "TOTAL DUE:", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(ledger.TotalCost(job.ServiceItems)), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Payment Terms: Payment due upon receipt. Thank you for your business!", "", "L", false)

	out, err := render(pdf)
	name := fmt.Sprintf("invoice_%s_%s.pdf", car.LicensePlate, docDate.Format("2006-01-02"))
	return out, name, err
}

// Receipt confirms a payment transaction and shows the owner's balance
// after it.
func (g *Generator) Receipt(payment models.Transaction, owner models.Owner, balance decimal.Decimal) ([]byte, string, error) {
	pdf := g.newPDF(payment.Date)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Payment Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Customer: "+owner.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+owner.Phone, "", 1, "L", false, 0, "")
	if owner.Email != "" {
		pdf.CellFormat(0, 6, "Email: "+owner.Email, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Receipt Date: "+payment.Date.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Receipt Number: RCP%06d", payment.ID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Payment Information:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount (R)", "1", 1, "R", false, 0, "")

	desc := payment.Description
	if desc == "" {
		desc = "Payment received"
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(150, 8, desc, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(payment.Amount), "1", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Remaining Balance:", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(balance), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Thank you for your payment! We appreciate your business.", "", "L", false)

	out, err := render(pdf)
	name := fmt.Sprintf("receipt_%d_%s.pdf", payment.ID, payment.Date.Format("2006-01-02"))
	return out, name, err
}

func render(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatAmount renders a currency value as "1,234.56".
func formatAmount(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	grouped := groupDigits(parts[0])
	out := grouped + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

func groupThousands(n int64) string {
	return groupDigits(fmt.Sprintf("%d", n))
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
