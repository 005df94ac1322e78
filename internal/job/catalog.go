package job

import (
	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ServiceCategoryResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// GET /api/service-categories
func ListServiceCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.ServiceCategory
		if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list service categories")
		}

		res := make([]ServiceCategoryResponse, 0, len(cats))
		for _, cat := range cats {
			res = append(res, ServiceCategoryResponse{
				ID:          cat.ID,
				Name:        cat.Name,
				Description: cat.Description,
				BasePrice:   cat.BasePrice,
			})
		}
		return c.JSON(res)
	}
}
