package document

import (
	"testing"
	"time"

	"garage-backend/internal/config"
	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	return New(&config.Config{
		GarageName:    "THE CAR BUDDIES",
		GarageAddress: "12 Workshop Lane",
		GaragePhone:   "011 555 0199",
		GarageEmail:   "service@carbuddies.example",
	})
}

func testJob() models.ServiceJob {
	dateOut := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	mileageOut := 120150
	return models.ServiceJob{
		ID:         7,
		DateIn:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		DateOut:    &dateOut,
		MileageIn:  120000,
		MileageOut: &mileageOut,
		Status:     models.JobStatusCompleted,
		CarID:      3,
		Car: models.Car{
			ID:           3,
			LicensePlate: "CA1234AB",
			Make:         "Toyota",
			Model:        "Corolla",
			Year:         2016,
			OwnerID:      1,
			Owner: models.Owner{
				ID:    1,
				Name:  "Maria Petrova",
				Phone: "0888123456",
				Email: "maria@example.com",
			},
		},
		ServiceItems: []models.ServiceItem{
			{Description: "Oil Change Service", Cost: decimal.NewFromFloat(450), IsFixed: true},
			{Description: "Timing belt estimate", Cost: decimal.NewFromFloat(2500), IsFixed: false},
		},
	}
}

func TestQuotationIsDeterministic(t *testing.T) {
	g := testGenerator()
	job := testJob()

	first, name, err := g.Quotation(job)
	require.NoError(t, err)
	second, _, err := g.Quotation(job)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same snapshot must render byte-identical PDFs")
	assert.Equal(t, "quotation_CA1234AB_2024-03-10.pdf", name)
	assert.NotEmpty(t, first)
}

func TestInvoiceIsDeterministic(t *testing.T) {
	g := testGenerator()
	job := testJob()

	first, name, err := g.Invoice(job)
	require.NoError(t, err)
	second, _, err := g.Invoice(job)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "invoice_CA1234AB_2024-03-12.pdf", name)
}

func TestReceiptFilename(t *testing.T) {
	g := testGenerator()
	payment := models.Transaction{
		ID:     12,
		Amount: decimal.NewFromFloat(200),
		Type:   models.TransactionTypePayment,
		Date:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	owner := models.Owner{Name: "Maria Petrova", Phone: "0888123456"}

	out, name, err := g.Receipt(payment, owner, decimal.NewFromFloat(250))
	require.NoError(t, err)
	assert.Equal(t, "receipt_12_2024-03-15.pdf", name)
	assert.NotEmpty(t, out)
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"450":       "450.00",
		"1234.5":    "1,234.50",
		"1234567.8": "1,234,567.80",
		"-999.99":   "-999.99",
		"-12345":    "-12,345.00",
	}
	for in, want := range cases {
		v, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, formatAmount(v), "input %s", in)
	}
}
