package middleware

import (
	"project_analysis_backend/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows any origin when allowOrigins is empty. Credentials are only
// allowed for an explicit origin list.
func CORS(allowOrigins string) fiber.Handler {
	logging.Logger.Info("CORS configured", "allowOrigins", allowOrigins)
	cfg := cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, X-Requested-With, Accept",
	}
	if allowOrigins == "" {
		cfg.AllowOrigins = "*"
	} else {
		cfg.AllowOrigins = allowOrigins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
