package handlers

import (
	"errors"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"error", "details"}. Details of 5xx
// responses are withheld when hideDetails is set.
func ErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		resp := models.ErrorResponse{Error: "Internal server error", Details: err.Error()}

		var admission *models.UploadAdmissionError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &admission):
			status = fiber.StatusBadRequest
			resp = models.ErrorResponse{Error: admission.Reason, Details: admission.Details}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			if status == fiber.StatusRequestEntityTooLarge {
				status = fiber.StatusBadRequest
				resp = models.ErrorResponse{Error: "File upload error", Details: fiberErr.Message}
			} else {
				resp = models.ErrorResponse{Error: fiberErr.Message}
			}
		}

		if status >= fiber.StatusInternalServerError {
			logging.Logger.Error("request failed",
				"error", err,
				"method", c.Method(),
				"path", c.Path(),
			)
			if hideDetails {
				resp.Details = ""
			}
		}
		return c.Status(status).JSON(resp)
	}
}
