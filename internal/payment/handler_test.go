package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Post("/api/payments", CreatePaymentHandler())
	app.Get("/api/payments", ListPaymentsHandler())
	return app
}

func seedOwner(t *testing.T) models.Owner {
	t.Helper()
	owner := models.Owner{Name: "Georgi Ivanov", Phone: "0877555111"}
	require.NoError(t, database.DB.Create(&owner).Error)
	return owner
}

func postPayment(t *testing.T, app *fiber.App, body CreatePaymentRequest) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/payments", &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreatePayment(t *testing.T) {
	app := setupTestApp(t)
	owner := seedOwner(t)

	resp := postPayment(t, app, CreatePaymentRequest{
		OwnerID: owner.ID,
		Amount:  decimal.NewFromFloat(200),
		Date:    "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created PaymentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Georgi Ivanov", created.OwnerName)
	assert.Equal(t, "2024-03-15", created.Date)
	assert.Equal(t, "Payment received", created.Description)

	var txn models.Transaction
	require.NoError(t, database.DB.First(&txn).Error)
	assert.Equal(t, models.TransactionTypePayment, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(200)))
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	app := setupTestApp(t)
	owner := seedOwner(t)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-50)} {
		resp := postPayment(t, app, CreatePaymentRequest{OwnerID: owner.ID, Amount: amount})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	var count int64
	require.NoError(t, database.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePaymentUnknownOwner(t *testing.T) {
	app := setupTestApp(t)

	resp := postPayment(t, app, CreatePaymentRequest{OwnerID: 42, Amount: decimal.NewFromFloat(100)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPaymentsExcludesInvoices(t *testing.T) {
	app := setupTestApp(t)
	owner := seedOwner(t)

	txns := []models.Transaction{
		{Amount: decimal.NewFromFloat(500), Type: models.TransactionTypeInvoice, Date: time.Now(), OwnerID: owner.ID},
		{Amount: decimal.NewFromFloat(200), Type: models.TransactionTypePayment, Date: time.Now(), OwnerID: owner.ID},
	}
	for i := range txns {
		require.NoError(t, database.DB.Create(&txns[i]).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []PaymentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromFloat(200)))
	assert.Equal(t, "Georgi Ivanov", list[0].OwnerName)
}
