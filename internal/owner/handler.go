package owner

import (
	"errors"
	"strings"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateOwnerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

type OwnerResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email"`
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

func toResponse(o models.Owner) OwnerResponse {
	return OwnerResponse{
		ID:      o.ID,
		Name:    o.Name,
		Phone:   o.Phone,
		Email:   o.Email,
		Address: o.Address,
		Balance: ledger.Balance(o.Transactions),
	}
}

// GET /api/owners
func ListOwnersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var owners []models.Owner
		if err := database.DB.Preload("Transactions").Order("name asc").Find(&owners).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list owners")
		}

		res := make([]OwnerResponse, 0, len(owners))
		totalOutstanding := decimal.Zero
		withBalance := 0
		for _, o := range owners {
			r := toResponse(o)
			res = append(res, r)
			totalOutstanding = totalOutstanding.Add(r.Balance)
			if r.Balance.IsPositive() {
				withBalance++
			}
		}

		return c.JSON(fiber.Map{
			"owners":              res,
			"total_outstanding":   totalOutstanding,
			"owners_with_balance": withBalance,
		})
	}
}

// POST /api/owners
func CreateOwnerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOwnerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Name and phone are required, email must be valid")
		}

		owner := models.Owner{
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   strings.TrimSpace(body.Email),
			Address: strings.TrimSpace(body.Address),
		}
		if err := database.DB.Create(&owner).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create owner")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(owner))
	}
}

// GET /api/owners/:id
func GetOwnerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid owner id")
		}

		var owner models.Owner
		err = database.DB.
			Preload("Cars").
			Preload("Transactions", func(db *gorm.DB) *gorm.DB {
				return db.Order("date desc, id desc")
			}).
			First(&owner, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Owner not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load owner")
		}

		cars := make([]fiber.Map, 0, len(owner.Cars))
		for _, car := range owner.Cars {
			cars = append(cars, fiber.Map{
				"id":            car.ID,
				"license_plate": car.LicensePlate,
				"make":          car.Make,
				"model":         car.Model,
				"year":          car.Year,
			})
		}

		txns := make([]fiber.Map, 0, len(owner.Transactions))
		for _, t := range owner.Transactions {
			txns = append(txns, fiber.Map{
				"id":          t.ID,
				"amount":      t.Amount,
				"type":        t.Type,
				"description": t.Description,
				"date":        t.Date.Format("2006-01-02"),
			})
		}

		r := toResponse(owner)
		return c.JSON(fiber.Map{
			"id":           r.ID,
			"name":         r.Name,
			"phone":        r.Phone,
			"email":        r.Email,
			"address":      r.Address,
			"balance":      r.Balance,
			"cars":         cars,
			"transactions": txns,
		})
	}
}
