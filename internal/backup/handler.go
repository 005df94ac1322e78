package backup

import (
	"log"

	"garage-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type BackupRequest struct {
	Type               string `json:"type"` // database | full
	IncludeAttachments bool   `json:"include_attachments"`
}

// POST /api/backup
//
// Backup failures are reported in the response body, not as a 5xx: the
// operation is best-effort and must never take the app down with it.
func BackupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := BackupRequest{Type: TypeDatabase, IncludeAttachments: true}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}

		name, err := Run(cfg, body.Type, body.IncludeAttachments)
		if err != nil {
			log.Printf("Backup failed: %v", err)
			return c.JSON(fiber.Map{"success": false, "error": err.Error()})
		}

		if err := CleanupOld(cfg); err != nil {
			log.Printf("Backup cleanup failed: %v", err)
		}

		return c.JSON(fiber.Map{"success": true, "file": name})
	}
}
