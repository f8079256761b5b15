package routes

import (
	"project_analysis_backend/handlers"

	"github.com/gofiber/fiber/v2"
)

func RegisterDocumentRoutes(app *fiber.App, handler *handlers.DocHandler) {
	api := app.Group("/api")
	api.Get("/health", handler.Health)
	api.Post("/process-documents", handler.ProcessDocuments)

	// legacy path used by older clients
	app.Post("/process-documents", handler.ProcessDocuments)
}
