package car

import (
	"errors"
	"strings"

	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateCarRequest struct {
	LicensePlate string `json:"license_plate" validate:"required"`
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Color        string `json:"color"`
	VIN          string `json:"vin"`
	OwnerID      uint   `json:"owner_id" validate:"required"`
}

type CarResponse struct {
	ID           uint   `json:"id"`
	LicensePlate string `json:"license_plate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	VIN          string `json:"vin"`
	OwnerID      uint   `json:"owner_id"`
	OwnerName    string `json:"owner_name"`
}

func toResponse(car models.Car) CarResponse {
	return CarResponse{
		ID:           car.ID,
		LicensePlate: car.LicensePlate,
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		Color:        car.Color,
		VIN:          car.VIN,
		OwnerID:      car.OwnerID,
		OwnerName:    car.Owner.Name,
	}
}

// GET /api/cars
func ListCarsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cars []models.Car
		if err := database.DB.Preload("Owner").Order("make asc, model asc").Find(&cars).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list cars")
		}

		res := make([]CarResponse, 0, len(cars))
		for _, car := range cars {
			res = append(res, toResponse(car))
		}
		return c.JSON(res)
	}
}

// POST /api/cars
func CreateCarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCarRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.LicensePlate = models.NormalizePlate(body.LicensePlate)
		body.Make = strings.TrimSpace(body.Make)
		body.Model = strings.TrimSpace(body.Model)
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "License plate, make, model and owner_id are required")
		}

		var owner models.Owner
		if err := database.DB.First(&owner, body.OwnerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Owner not found")
		}

		// Plates are unique case-insensitively; check before insert so the
		// caller gets a validation error rather than a DB error.
		var count int64
		database.DB.Model(&models.Car{}).
			Where("license_plate = ?", body.LicensePlate).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "A car with this license plate already exists")
		}

		car := models.Car{
			LicensePlate: body.LicensePlate,
			Make:         body.Make,
			Model:        body.Model,
			Year:         body.Year,
			Color:        strings.TrimSpace(body.Color),
			VIN:          strings.TrimSpace(body.VIN),
			OwnerID:      owner.ID,
			Owner:        owner,
		}
		if err := database.DB.Create(&car).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create car")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(car))
	}
}

// GET /api/cars/:id
func GetCarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid car id")
		}

		var car models.Car
		err = database.DB.
			Preload("Owner").
			Preload("ServiceJobs", func(db *gorm.DB) *gorm.DB {
				return db.Order("date_in desc")
			}).
			Preload("ServiceJobs.ServiceItems").
			First(&car, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Car not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load car")
		}

		jobs := make([]fiber.Map, 0, len(car.ServiceJobs))
		for _, job := range car.ServiceJobs {
			jobs = append(jobs, fiber.Map{
				"id":      job.ID,
				"date_in": job.DateIn.Format("2006-01-02"),
				"status":  job.Status,
			})
		}

		r := toResponse(car)
		return c.JSON(fiber.Map{
			"id":            r.ID,
			"license_plate": r.LicensePlate,
			"make":          r.Make,
			"model":         r.Model,
			"year":          r.Year,
			"color":         r.Color,
			"vin":           r.VIN,
			"owner_id":      r.OwnerID,
			"owner_name":    r.OwnerName,
			"service_jobs":  jobs,
		})
	}
}
