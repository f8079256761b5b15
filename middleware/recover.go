package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func Recover() fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: true})
}

func RequestID() fiber.Handler {
	return requestid.New()
}
