package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/database"
	"github.com/okravets/institutions-api/utils/response"
)

// HandleCheckHealth reports service liveness and database reachability
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.ServiceUnavailable(c, "Database unreachable")
		}
		return response.Success(c, fiber.Map{"status": "ok"})
	}
}
