package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger comprueba la conexión a la base de datos (pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health GET /api/health. Con db nil solo informa que el proceso responde.
func Health(db Pinger, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "version": version}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				body["status"] = "degraded"
				body["database"] = "unreachable"
				return ok(c, fiber.StatusServiceUnavailable, body)
			}
			body["database"] = "ok"
		}
		return ok(c, fiber.StatusOK, body)
	}
}
