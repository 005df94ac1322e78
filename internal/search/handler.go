package search

import (
	"strings"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/search?q=<query>&type=license_plate|owner_name|car_make|phone|all
func SearchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		searchType := c.Query("type", "all")

		if len(query) < 2 {
			return c.JSON([]fiber.Map{})
		}

		// LOWER(...) keeps matching case-insensitive on both SQLite and
		// Postgres.
		pattern := "%" + strings.ToLower(query) + "%"
		results := make([]fiber.Map, 0)

		if searchType == "license_plate" || searchType == "car_make" || searchType == "all" {
			carQuery := database.DB.Preload("Owner")
			switch searchType {
			case "license_plate":
				carQuery = carQuery.Where("LOWER(license_plate) LIKE ?", pattern)
			case "car_make":
				carQuery = carQuery.Where("LOWER(make) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern)
			default:
				carQuery = carQuery.Where("LOWER(license_plate) LIKE ? OR LOWER(make) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern, pattern)
			}

			var cars []models.Car
			if err := carQuery.Find(&cars).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Search failed")
			}
			for _, car := range cars {
				results = append(results, fiber.Map{
					"type":          "car",
					"id":            car.ID,
					"license_plate": car.LicensePlate,
					"make":          car.Make,
					"model":         car.Model,
					"owner_name":    car.Owner.Name,
				})
			}
		}

		if searchType == "owner_name" || searchType == "phone" || searchType == "all" {
			ownerQuery := database.DB.Preload("Transactions")
			switch searchType {
			case "owner_name":
				ownerQuery = ownerQuery.Where("LOWER(name) LIKE ?", pattern)
			case "phone":
				ownerQuery = ownerQuery.Where("LOWER(phone) LIKE ?", pattern)
			default:
				ownerQuery = ownerQuery.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ?", pattern, pattern)
			}

			var owners []models.Owner
			if err := ownerQuery.Find(&owners).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Search failed")
			}
			for _, o := range owners {
				results = append(results, fiber.Map{
					"type":    "owner",
					"id":      o.ID,
					"name":    o.Name,
					"phone":   o.Phone,
					"balance": ledger.Balance(o.Transactions),
				})
			}
		}

		return c.JSON(results)
	}
}
