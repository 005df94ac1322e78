package job

import (
	"errors"
	"time"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateJobRequest struct {
	CarID     uint   `json:"car_id" validate:"required"`
	DateIn    string `json:"date_in" validate:"required"` // "2006-01-02"
	MileageIn int    `json:"mileage_in" validate:"required,gte=0"`
	Notes     string `json:"notes"`
	Quoted    bool   `json:"quoted"` // start as a quote instead of in_progress
}

type JobResponse struct {
	ID           uint             `json:"id"`
	DateIn       string           `json:"date_in"`
	DateOut      string           `json:"date_out,omitempty"`
	MileageIn    int              `json:"mileage_in"`
	MileageOut   *int             `json:"mileage_out,omitempty"`
	Status       models.JobStatus `json:"status"`
	Notes        string           `json:"notes"`
	CarID        uint             `json:"car_id"`
	LicensePlate string           `json:"license_plate"`
	CarMake      string           `json:"car_make"`
	CarModel     string           `json:"car_model"`
	OwnerID      uint             `json:"owner_id"`
	OwnerName    string           `json:"owner_name"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	QuotedCost   decimal.Decimal  `json:"quoted_cost"`
	Items        []ItemResponse   `json:"items,omitempty"`
}

type ItemResponse struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	IsFixed     bool            `json:"is_fixed"`
}

func toResponse(job models.ServiceJob, withItems bool) JobResponse {
	r := JobResponse{
		ID:           job.ID,
		DateIn:       job.DateIn.Format("2006-01-02"),
		MileageIn:    job.MileageIn,
		MileageOut:   job.MileageOut,
		Status:       job.Status,
		Notes:        job.Notes,
		CarID:        job.CarID,
		LicensePlate: job.Car.LicensePlate,
		CarMake:      job.Car.Make,
		CarModel:     job.Car.Model,
		OwnerID:      job.Car.OwnerID,
		OwnerName:    job.Car.Owner.Name,
		TotalCost:    ledger.TotalCost(job.ServiceItems),
		QuotedCost:   ledger.QuotedCost(job.ServiceItems),
	}
	if job.DateOut != nil {
		r.DateOut = job.DateOut.Format("2006-01-02")
	}
	if withItems {
		r.Items = make([]ItemResponse, 0, len(job.ServiceItems))
		for _, it := range job.ServiceItems {
			r.Items = append(r.Items, ItemResponse{
				ID:          it.ID,
				Description: it.Description,
				Cost:        it.Cost,
				IsFixed:     it.IsFixed,
			})
		}
	}
	return r
}

func loadJob(db *gorm.DB, id int) (*models.ServiceJob, error) {
	var job models.ServiceJob
	err := db.
		Preload("Car").
		Preload("Car.Owner").
		Preload("ServiceItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Service job not found")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load service job")
	}
	return &job, nil
}

// GET /api/jobs?status=in_progress|completed|quoted
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.
			Preload("Car").
			Preload("Car.Owner").
			Preload("ServiceItems")

		if status := c.Query("status"); status != "" && status != "all" {
			query = query.Where("status = ?", status)
		}

		var jobs []models.ServiceJob
		if err := query.Order("date_in desc").Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list service jobs")
		}

		res := make([]JobResponse, 0, len(jobs))
		for _, job := range jobs {
			res = append(res, toResponse(job, false))
		}
		return c.JSON(res)
	}
}

// POST /api/jobs
func CreateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "car_id, date_in and mileage_in are required")
		}

		dateIn, err := time.Parse("2006-01-02", body.DateIn)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_in must be 'YYYY-MM-DD'")
		}

		var car models.Car
		if err := database.DB.Preload("Owner").First(&car, body.CarID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Car not found")
		}

		status := models.JobStatusInProgress
		if body.Quoted {
			status = models.JobStatusQuoted
		}

		job := models.ServiceJob{
			DateIn:    dateIn,
			MileageIn: body.MileageIn,
			Status:    status,
			Notes:     body.Notes,
			CarID:     car.ID,
			Car:       car,
		}
		if err := database.DB.Create(&job).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create service job")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(job, true))
	}
}

// GET /api/jobs/:id
func GetJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}

		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(*job, true))
	}
}
