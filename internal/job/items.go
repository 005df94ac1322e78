package job

import (
	"strings"

	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Cost        decimal.Decimal `json:"cost"`
	IsFixed     bool            `json:"is_fixed"`
}

type QuickItemRequest struct {
	Type              models.ServiceType `json:"type" validate:"required"`
	CustomDescription string             `json:"custom_description"`
	Cost              decimal.Decimal    `json:"cost"`
	IsFixed           bool               `json:"is_fixed"`
}

type UpdateItemRequest struct {
	Description *string          `json:"description"`
	Cost        *decimal.Decimal `json:"cost"`
	IsFixed     *bool            `json:"is_fixed"`
}

type ToggleItemRequest struct {
	IsFixed bool `json:"is_fixed"`
}

// POST /api/jobs/:id/items
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Description = strings.TrimSpace(body.Description)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Description is required")
		}
		if body.Cost.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Cost cannot be negative")
		}

		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		item := models.ServiceItem{
			Description:  body.Description,
			Cost:         body.Cost,
			IsFixed:      body.IsFixed,
			ServiceJobID: job.ID,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add service item")
		}

		return c.Status(fiber.StatusCreated).JSON(ItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Cost:        item.Cost,
			IsFixed:     item.IsFixed,
		})
	}
}

// POST /api/jobs/:id/quick-items
//
// Adds an item from the closed quick-service catalog. When cost is zero
// the seeded category base price is used.
func AddQuickItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}

		var body QuickItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		desc, ok := body.Type.Description(strings.TrimSpace(body.CustomDescription))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown quick service type")
		}
		if body.Cost.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Cost cannot be negative")
		}

		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		cost := body.Cost
		if cost.IsZero() && body.Type != models.ServiceTypeCustom {
			var cat models.ServiceCategory
			if err := database.DB.
				Where("name = ? AND is_active = ?", desc, true).
				First(&cat).Error; err == nil {
				cost = cat.BasePrice
			}
		}

		item := models.ServiceItem{
			Description:  desc,
			Cost:         cost,
			IsFixed:      body.IsFixed,
			ServiceJobID: job.ID,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add service item")
		}

		return c.Status(fiber.StatusCreated).JSON(ItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Cost:        item.Cost,
			IsFixed:     item.IsFixed,
		})
	}
}

// PUT /api/items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var item models.ServiceItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Service item not found")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Description != nil {
			desc := strings.TrimSpace(*body.Description)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Description cannot be empty")
			}
			item.Description = desc
		}
		if body.Cost != nil {
			if body.Cost.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Cost cannot be negative")
			}
			item.Cost = *body.Cost
		}
		if body.IsFixed != nil {
			item.IsFixed = *body.IsFixed
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update service item")
		}

		return c.JSON(ItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Cost:        item.Cost,
			IsFixed:     item.IsFixed,
		})
	}
}

// PUT /api/items/:id/toggle
func ToggleItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var item models.ServiceItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Service item not found")
		}

		var body ToggleItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item.IsFixed = body.IsFixed
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update service item")
		}

		return c.JSON(fiber.Map{"success": true, "is_fixed": item.IsFixed})
	}
}

// DELETE /api/items/:id
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var item models.ServiceItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Service item not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete service item")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
