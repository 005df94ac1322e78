package payment

import (
	"fmt"
	"strings"
	"time"

	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/document"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	OwnerID     uint            `json:"owner_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // "2006-01-02", defaults to today
	Description string          `json:"description"`
}

type PaymentResponse struct {
	ID          uint            `json:"id"`
	OwnerID     uint            `json:"owner_id"`
	OwnerName   string          `json:"owner_name"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// GET /api/payments
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payments []models.Transaction
		err := database.DB.
			Where("type = ?", models.TransactionTypePayment).
			Order("date desc, id desc").
			Find(&payments).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list payments")
		}

		// Resolve owner names in one pass.
		ownerIDs := make([]uint, 0, len(payments))
		for _, p := range payments {
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
		names := map[uint]string{}
		if len(ownerIDs) > 0 {
			var owners []models.Owner
			if err := database.DB.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load owners")
			}
			for _, o := range owners {
				names[o.ID] = o.Name
			}
		}

		res := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			res = append(res, PaymentResponse{
				ID:          p.ID,
				OwnerID:     p.OwnerID,
				OwnerName:   names[p.OwnerID],
				Amount:      p.Amount,
				Date:        p.Date.Format("2006-01-02"),
				Description: p.Description,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/payments
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.OwnerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "owner_id is required")
		}
		if !body.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
		}

		date := time.Now().Truncate(24 * time.Hour)
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			date = d
		}

		var owner models.Owner
		if err := database.DB.First(&owner, body.OwnerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Owner not found")
		}

		desc := strings.TrimSpace(body.Description)
		if desc == "" {
			desc = "Payment received"
		}

		payment := models.Transaction{
			Amount:      body.Amount,
			Type:        models.TransactionTypePayment,
			Description: desc,
			Date:        date,
			OwnerID:     owner.ID,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record payment")
		}

		return c.Status(fiber.StatusCreated).JSON(PaymentResponse{
			ID:          payment.ID,
			OwnerID:     payment.OwnerID,
			OwnerName:   owner.Name,
			Amount:      payment.Amount,
			Date:        payment.Date.Format("2006-01-02"),
			Description: payment.Description,
		})
	}
}

// GET /api/payments/:id/receipt
func DownloadReceiptHandler(cfg *config.Config) fiber.Handler {
	gen := document.New(cfg)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
		}

		var payment models.Transaction
		if err := database.DB.First(&payment, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		if payment.Type != models.TransactionTypePayment {
			return fiber.NewError(fiber.StatusBadRequest, "Receipts exist for payments only")
		}

		var owner models.Owner
		if err := database.DB.Preload("Transactions").First(&owner, payment.OwnerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Owner not found")
		}

		pdfBytes, name, err := gen.Receipt(payment, owner, ledger.Balance(owner.Transactions))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate receipt")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		return c.Send(pdfBytes)
	}
}
