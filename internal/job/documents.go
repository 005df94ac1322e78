package job

import (
	"fmt"

	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/document"
	"garage-backend/internal/ledger"
	"garage-backend/internal/mailer"

	"github.com/gofiber/fiber/v2"
)

type SendDocumentRequest struct {
	RecipientEmail string `json:"recipient_email"`
}

// GET /api/jobs/:id/quotation
func DownloadQuotationHandler(cfg *config.Config) fiber.Handler {
	gen := document.New(cfg)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}
		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		pdfBytes, name, err := gen.Quotation(*job)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate quotation")
		}
		return sendPDF(c, pdfBytes, name)
	}
}

// GET /api/jobs/:id/invoice
func DownloadInvoiceHandler(cfg *config.Config) fiber.Handler {
	gen := document.New(cfg)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}
		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		pdfBytes, name, err := gen.Invoice(*job)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate invoice")
		}
		return sendPDF(c, pdfBytes, name)
	}
}

// POST /api/jobs/:id/send-quotation
func SendQuotationHandler(cfg *config.Config, m *mailer.Mailer) fiber.Handler {
	gen := document.New(cfg)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}
		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		recipient, err := resolveRecipient(c, job.Car.Owner.Email)
		if err != nil {
			return err
		}

		pdfBytes, name, err := gen.Quotation(*job)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate quotation")
		}

		subject := fmt.Sprintf("Quotation for %s - %s", job.Car.LicensePlate, cfg.GarageName)
		body := fmt.Sprintf(`<html><body>
<h2>Quotation from %s</h2>
<p>Dear %s,</p>
<p>Please find attached the quotation for your vehicle <strong>%s</strong>.</p>
<p><strong>Vehicle:</strong> %s %s</p>
<p><strong>Total Quotation:</strong> R %s</p>
<br>
<p>Thank you for choosing %s!</p>
<p><strong>%s</strong><br>%s<br>%s</p>
</body></html>`,
			cfg.GarageName, job.Car.Owner.Name, job.Car.LicensePlate,
			job.Car.Make, job.Car.Model,
			ledger.QuotedCost(job.ServiceItems).StringFixed(2),
			cfg.GarageName, cfg.GarageName, cfg.GarageAddress, cfg.GaragePhone)

		sent := m.Send(recipient, subject, body, pdfBytes, name)
		return c.JSON(fiber.Map{"sent": sent})
	}
}

// POST /api/jobs/:id/send-invoice
func SendInvoiceHandler(cfg *config.Config, m *mailer.Mailer) fiber.Handler {
	gen := document.New(cfg)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
		}
		job, err := loadJob(database.DB, id)
		if err != nil {
			return err
		}

		recipient, err := resolveRecipient(c, job.Car.Owner.Email)
		if err != nil {
			return err
		}

		pdfBytes, name, err := gen.Invoice(*job)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate invoice")
		}

		subject := fmt.Sprintf("Invoice for %s - %s", job.Car.LicensePlate, cfg.GarageName)
		body := fmt.Sprintf(`<html><body>
<h2>Invoice from %s</h2>
<p>Dear %s,</p>
<p>Please find attached the invoice for services completed on your vehicle <strong>%s</strong>.</p>
<p><strong>Vehicle:</strong> %s %s</p>
<p><strong>Total Due:</strong> R %s</p>
<br>
<p>Thank you for your business!</p>
<p><strong>%s</strong><br>%s<br>%s</p>
</body></html>`,
			cfg.GarageName, job.Car.Owner.Name, job.Car.LicensePlate,
			job.Car.Make, job.Car.Model,
			ledger.TotalCost(job.ServiceItems).StringFixed(2),
			cfg.GarageName, cfg.GarageAddress, cfg.GaragePhone)

		sent := m.Send(recipient, subject, body, pdfBytes, name)
		return c.JSON(fiber.Map{"sent": sent})
	}
}

func resolveRecipient(c *fiber.Ctx, ownerEmail string) (string, error) {
	var body SendDocumentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return "", fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	recipient := body.RecipientEmail
	if recipient == "" {
		recipient = ownerEmail
	}
	if recipient == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "No email address on file for the car owner")
	}
	return recipient, nil
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, name string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(pdfBytes)
}
