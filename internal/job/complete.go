package job

import (
	"fmt"
	"time"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CompleteJobRequest struct {
	MileageOut *int `json:"mileage_out"`
}

// POST /api/jobs/:id/complete
//
// Marks the job completed and, when the fixed items add up to more than
// zero, books exactly one invoice transaction for the owner with that
// total. The amount is a snapshot: editing items later never changes it.
// The status update is a compare-and-set so two concurrent completions
// cannot book two invoices; the loser gets a 409.
func CompleteJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}

		var body CompleteJobRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}
		if body.MileageOut != nil && *body.MileageOut < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "mileage_out cannot be negative")
		}

		var invoiceID *uint
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			job, err := loadJob(tx, id)
			if err != nil {
				return err
			}
			if job.Status == models.JobStatusCompleted {
				return fiber.NewError(fiber.StatusConflict, "Service job is already completed")
			}

			today := time.Now().Truncate(24 * time.Hour)
			updates := map[string]interface{}{
				"status":   models.JobStatusCompleted,
				"date_out": today,
			}
			if body.MileageOut != nil {
				updates["mileage_out"] = *body.MileageOut
			}

			res := tx.Model(&models.ServiceJob{}).
				Where("id = ? AND status <> ?", job.ID, models.JobStatusCompleted).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusConflict, "Service job is already completed")
			}

			// Zero total is a valid completion that simply books nothing.
			total := ledger.TotalCost(job.ServiceItems)
			if total.IsPositive() {
				invoice := models.Transaction{
					Amount:       total,
					Type:         models.TransactionTypeInvoice,
					Description:  fmt.Sprintf("Service for %s", job.Car.LicensePlate),
					Date:         today,
					OwnerID:      job.Car.OwnerID,
					ServiceJobID: &job.ID,
				}
				if err := tx.Create(&invoice).Error; err != nil {
					return err
				}
				invoiceID = &invoice.ID
			}
			return nil
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not complete service job")
		}

		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		res := toResponse(*job, true)
		return c.JSON(fiber.Map{
			"job":             res,
			"invoice_created": invoiceID != nil,
			"invoice_id":      invoiceID,
		})
	}
}
