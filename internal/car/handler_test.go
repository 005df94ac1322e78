package car

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
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
	app.Post("/api/cars", CreateCarHandler())
	return app
}

func createCar(t *testing.T, app *fiber.App, body CreateCarRequest) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/cars", &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateCarNormalizesPlate(t *testing.T) {
	app := setupTestApp(t)

	owner := models.Owner{Name: "Ivan Dimitrov", Phone: "0899123456"}
	require.NoError(t, database.DB.Create(&owner).Error)

	resp := createCar(t, app, CreateCarRequest{
		LicensePlate: "  ca1234ab ",
		Make:         "Honda",
		Model:        "Civic",
		OwnerID:      owner.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created CarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "CA1234AB", created.LicensePlate)
}

func TestCreateCarDuplicatePlateCaseInsensitive(t *testing.T) {
	app := setupTestApp(t)

	owner := models.Owner{Name: "Ivan Dimitrov", Phone: "0899123456"}
	require.NoError(t, database.DB.Create(&owner).Error)

	resp := createCar(t, app, CreateCarRequest{
		LicensePlate: "CA1234AB",
		Make:         "Honda",
		Model:        "Civic",
		OwnerID:      owner.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = createCar(t, app, CreateCarRequest{
		LicensePlate: "ca1234ab",
		Make:         "Honda",
		Model:        "Civic",
		OwnerID:      owner.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Car{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateCarUnknownOwner(t *testing.T) {
	app := setupTestApp(t)

	resp := createCar(t, app, CreateCarRequest{
		LicensePlate: "CB5678CH",
		Make:         "Mazda",
		Model:        "3",
		OwnerID:      42,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
