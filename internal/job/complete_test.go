package job

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
	app.Post("/api/jobs/:id/complete", CompleteJobHandler())
	app.Post("/api/jobs/:id/items", AddItemHandler())
	app.Post("/api/jobs/:id/quick-items", AddQuickItemHandler())
	app.Put("/api/items/:id", UpdateItemHandler())
	return app
}

func seedJob(t *testing.T, status models.JobStatus, items []models.ServiceItem) models.ServiceJob {
	t.Helper()

	owner := models.Owner{Name: "Maria Petrova", Phone: "0888123456", Email: "maria@example.com"}
	require.NoError(t, database.DB.Create(&owner).Error)

	car := models.Car{LicensePlate: "CA1234AB", Make: "Toyota", Model: "Corolla", Year: 2016, OwnerID: owner.ID}
	require.NoError(t, database.DB.Create(&car).Error)

	job := models.ServiceJob{
		DateIn:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		MileageIn:    120000,
		Status:       status,
		CarID:        car.ID,
		ServiceItems: items,
	}
	require.NoError(t, database.DB.Create(&job).Error)
	return job
}

func postJSON(t *testing.T, app *fiber.App, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCompleteJobCreatesInvoiceSnapshot(t *testing.T) {
	app := setupTestApp(t)
	job := seedJob(t, models.JobStatusInProgress, []models.ServiceItem{
		{Description: "Oil Change Service", Cost: decimal.NewFromFloat(100.25), IsFixed: true},
		{Description: "Wiper blades", Cost: decimal.NewFromFloat(20.25), IsFixed: true},
		{Description: "Timing belt estimate", Cost: decimal.NewFromFloat(50.00), IsFixed: false},
	})

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		InvoiceCreated bool  `json:"invoice_created"`
		InvoiceID      *uint `json:"invoice_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.InvoiceCreated)
	require.NotNil(t, result.InvoiceID)

	var txns []models.Transaction
	require.NoError(t, database.DB.Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeInvoice, txns[0].Type)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromFloat(120.50)),
		"invoice should cover fixed items only, got %s", txns[0].Amount)
	require.NotNil(t, txns[0].ServiceJobID)
	assert.Equal(t, job.ID, *txns[0].ServiceJobID)

	var completed models.ServiceJob
	require.NoError(t, database.DB.First(&completed, job.ID).Error)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.NotNil(t, completed.DateOut)
}

func TestCompleteJobInvoiceIsASnapshot(t *testing.T) {
	app := setupTestApp(t)
	job := seedJob(t, models.JobStatusInProgress, []models.ServiceItem{
		{Description: "Brake System Service", Cost: decimal.NewFromFloat(800), IsFixed: true},
	})

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Raising the item cost afterwards must not touch the booked invoice.
	var item models.ServiceItem
	require.NoError(t, database.DB.Where("service_job_id = ?", job.ID).First(&item).Error)
	newCost := decimal.NewFromFloat(999)
	resp = postJSON(t, app, http.MethodPut, "/api/items/1", UpdateItemRequest{Cost: &newCost})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var txn models.Transaction
	require.NoError(t, database.DB.First(&txn).Error)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(800)),
		"invoice amount changed after item edit, got %s", txn.Amount)
}

func TestCompleteJobZeroTotalBooksNothing(t *testing.T) {
	app := setupTestApp(t)
	seedJob(t, models.JobStatusInProgress, []models.ServiceItem{
		{Description: "Pending diagnosis", Cost: decimal.NewFromFloat(300), IsFixed: false},
	})

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		InvoiceCreated bool `json:"invoice_created"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.InvoiceCreated)

	var count int64
	require.NoError(t, database.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)

	var job models.ServiceJob
	require.NoError(t, database.DB.First(&job, 1).Error)
	assert.Equal(t, models.JobStatusCompleted, job.Status)
}

func TestCompleteJobTwiceConflicts(t *testing.T) {
	app := setupTestApp(t)
	seedJob(t, models.JobStatusInProgress, []models.ServiceItem{
		{Description: "Battery Replacement", Cost: decimal.NewFromFloat(600), IsFixed: true},
	})

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "second completion must not book a second invoice")
}

func TestCompleteQuotedJob(t *testing.T) {
	app := setupTestApp(t)
	seedJob(t, models.JobStatusQuoted, []models.ServiceItem{
		{Description: "Suspension Repair", Cost: decimal.NewFromFloat(1200), IsFixed: true},
	})

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCompleteMissingJob(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/99/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuickItemUsesCategoryBasePrice(t *testing.T) {
	app := setupTestApp(t)
	seedJob(t, models.JobStatusInProgress, nil)

	cat := models.ServiceCategory{
		Name:      "Oil Change Service",
		BasePrice: decimal.NewFromFloat(450),
		IsActive:  true,
	}
	require.NoError(t, database.DB.Create(&cat).Error)

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/quick-items", QuickItemRequest{
		Type: models.ServiceTypeOilChange,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item ItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, "Oil Change Service", item.Description)
	assert.True(t, item.Cost.Equal(decimal.NewFromFloat(450)))
}

func TestQuickItemUnknownType(t *testing.T) {
	app := setupTestApp(t)
	seedJob(t, models.JobStatusInProgress, nil)

	resp := postJSON(t, app, http.MethodPost, "/api/jobs/1/quick-items", QuickItemRequest{
		Type: models.ServiceType("valet_parking"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
