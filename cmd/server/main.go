package main

import (
	"log"
	"strings"

	"garage-backend/internal/auth"
	"garage-backend/internal/backup"
	"garage-backend/internal/car"
	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/export"
	"garage-backend/internal/job"
	"garage-backend/internal/mailer"
	"garage-backend/internal/owner"
	"garage-backend/internal/payment"
	"garage-backend/internal/report"
	"garage-backend/internal/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	m := mailer.New(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/profile", auth.UpdateProfileHandler())

	// Owners
	protected.Post("/owners", owner.CreateOwnerHandler())
	protected.Get("/owners", owner.ListOwnersHandler())
	protected.Get("/owners/:id", owner.GetOwnerHandler())

	// Cars
	protected.Post("/cars", car.CreateCarHandler())
	protected.Get("/cars", car.ListCarsHandler())
	protected.Get("/cars/:id", car.GetCarHandler())

	// Service jobs & items
	protected.Post("/jobs", job.CreateJobHandler())
	protected.Get("/jobs", job.ListJobsHandler())
	protected.Get("/jobs/:id", job.GetJobHandler())
	protected.Post("/jobs/:id/items", job.AddItemHandler())
	protected.Post("/jobs/:id/quick-items", job.AddQuickItemHandler())
	protected.Put("/items/:id", job.UpdateItemHandler())
	protected.Put("/items/:id/toggle", job.ToggleItemHandler())
	protected.Delete("/items/:id", job.DeleteItemHandler())
	protected.Post("/jobs/:id/complete", job.CompleteJobHandler())

	// Documents
	protected.Get("/jobs/:id/quotation", job.DownloadQuotationHandler(cfg))
	protected.Get("/jobs/:id/invoice", job.DownloadInvoiceHandler(cfg))
	protected.Post("/jobs/:id/send-quotation", job.SendQuotationHandler(cfg, m))
	protected.Post("/jobs/:id/send-invoice", job.SendInvoiceHandler(cfg, m))

	// Quick-service catalog
	protected.Get("/service-categories", job.ListServiceCategoriesHandler())

	// Payments
	protected.Get("/payments", payment.ListPaymentsHandler())
	protected.Post("/payments", payment.CreatePaymentHandler())
	protected.Get("/payments/:id/receipt", payment.DownloadReceiptHandler(cfg))

	// Search
	protected.Get("/search", search.SearchHandler())

	// Dashboard & reports
	protected.Get("/dashboard/stats", report.DashboardStatsHandler())
	protected.Get("/dashboard/revenue-chart", report.RevenueChartHandler())
	protected.Get("/reports/outstanding-balances", report.OutstandingBalancesHandler())
	protected.Get("/reports/recent-payments", report.RecentPaymentsHandler())
	protected.Get("/reports/active-jobs", report.ActiveJobsHandler())
	protected.Get("/reports/service-history", report.ServiceHistoryHandler())

	// Exports
	protected.Get("/export/customers", export.CustomersHandler())
	protected.Get("/export/jobs", export.JobsHandler())

	// Backup
	protected.Post("/backup", backup.BackupHandler(cfg))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
