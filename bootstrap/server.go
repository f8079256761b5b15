package bootstrap

import (
	"project_analysis_backend/handlers"
	"project_analysis_backend/middleware"
	"project_analysis_backend/routes"

	"github.com/gofiber/fiber/v2"
)

// maxBatchFiles sizes the request body limit; each file is still checked
// against MaxFileSize by the handler.
const maxBatchFiles = 20

func NewServer(a *App) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:      "project-analysis-backend",
		BodyLimit:    int(a.Cfg.MaxFileSize)*maxBatchFiles + 1<<20,
		ErrorHandler: handlers.ErrorHandler(a.Cfg.IsProd()),
	})

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.Logger(a.Cfg.IsProd()))
	server.Use(middleware.CORS(a.Cfg.AllowOrigins))

	routes.RegisterDocumentRoutes(server, a.Handlers.DocHandler)
	return server
}
