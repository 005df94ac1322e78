package owner

import (
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
	app.Get("/api/owners", ListOwnersHandler())
	app.Get("/api/owners/:id", GetOwnerHandler())
	return app
}

func TestListOwnersAggregatesBalances(t *testing.T) {
	app := setupTestApp(t)

	debtor := models.Owner{Name: "Anna Koleva", Phone: "0888000001"}
	settled := models.Owner{Name: "Boris Mihov", Phone: "0888000002"}
	require.NoError(t, database.DB.Create(&debtor).Error)
	require.NoError(t, database.DB.Create(&settled).Error)

	now := time.Now()
	txns := []models.Transaction{
		{Amount: decimal.NewFromFloat(500), Type: models.TransactionTypeInvoice, Date: now, OwnerID: debtor.ID},
		{Amount: decimal.NewFromFloat(200), Type: models.TransactionTypePayment, Date: now, OwnerID: debtor.ID},
		{Amount: decimal.NewFromFloat(450), Type: models.TransactionTypeInvoice, Date: now, OwnerID: settled.ID},
		{Amount: decimal.NewFromFloat(450), Type: models.TransactionTypePayment, Date: now, OwnerID: settled.ID},
	}
	for i := range txns {
		require.NoError(t, database.DB.Create(&txns[i]).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/owners", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Owners            []OwnerResponse `json:"owners"`
		TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
		OwnersWithBalance int             `json:"owners_with_balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Owners, 2)
	assert.True(t, body.TotalOutstanding.Equal(decimal.NewFromFloat(300)))
	assert.Equal(t, 1, body.OwnersWithBalance)

	// Sorted by name, so the debtor comes first.
	assert.True(t, body.Owners[0].Balance.Equal(decimal.NewFromFloat(300)))
	assert.True(t, body.Owners[1].Balance.IsZero())
}

func TestGetOwnerNotFound(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/owners/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
