package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; the injected service owns it.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, dev bool) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc, dev))
	app.Post("/documents", CreateDocument(docSvc, dev))
	app.Get("/documents/:id", GetDocument(docSvc, dev))
	app.Put("/documents/:id", UpdateDocument(docSvc, dev))
	app.Delete("/documents/:id", DeleteDocument(docSvc, dev))
	app.Get("/documents/:id/download", DownloadDocument(docSvc, dev))
}
