package handlers

import (
	"fmt"
	"mime/multipart"
	"project_analysis_backend/config"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/platform/storage"
	"project_analysis_backend/services"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// uploadFields are the accepted multipart field names, in lookup order.
var uploadFields = []string{"files", "documents"}

type DocHandler struct {
	docService *services.DocumentService
	storage    *storage.Service
	cfg        *config.Config
	startedAt  time.Time
}

func NewDocHandler(docService *services.DocumentService, store *storage.Service, cfg *config.Config) *DocHandler {
	return &DocHandler{
		docService: docService,
		storage:    store,
		cfg:        cfg,
		startedAt:  time.Now(),
	}
}

func (h *DocHandler) ProcessDocuments(c *fiber.Ctx) error {
	batchID := uuid.New().String()

	parts, err := h.admit(c)
	if err != nil {
		return err
	}

	files := make([]models.UploadedFile, 0, len(parts))
	for _, fh := range parts {
		f, err := h.storage.SaveMultipart(fh)
		if err != nil {
			h.storage.Remove(files...)
			logging.Logger.Error("fail SaveMultipart", "error", err, "batchID", batchID)
			return err
		}
		files = append(files, f)
	}
	logging.Logger.Info("Processing upload batch", "batchID", batchID, "files", len(files))

	res, err := h.process(c, files)
	if err != nil {
		h.storage.Remove(files...)
		logging.Logger.Error("fail ProcessBatch", "error", err, "batchID", batchID)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to process documents",
			Details: err.Error(),
		})
	}

	logging.Logger.Info("Processed upload batch",
		"batchID", batchID,
		"project", res.ProjectName,
		"failed", len(res.Errors),
	)
	return c.JSON(res)
}

// admit returns the uploaded parts, or an UploadAdmissionError.
func (h *DocHandler) admit(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &models.UploadAdmissionError{Reason: "File upload error", Details: err.Error()}
	}

	var parts []*multipart.FileHeader
	for _, field := range uploadFields {
		if parts = form.File[field]; len(parts) > 0 {
			break
		}
	}
	if len(parts) == 0 {
		for field, fhs := range form.File {
			if len(fhs) > 0 {
				return nil, &models.UploadAdmissionError{Reason: "File upload error", Details: "Unexpected field: " + field}
			}
		}
		return nil, &models.UploadAdmissionError{
			Reason:  "No files uploaded",
			Details: "Send one or more files in the \"files\" or \"documents\" field",
		}
	}

	for _, fh := range parts {
		if fh.Size > h.cfg.MaxFileSize {
			return nil, &models.UploadAdmissionError{
				Reason:  "File upload error",
				Details: fmt.Sprintf("File too large: %s exceeds %d bytes", fh.Filename, h.cfg.MaxFileSize),
			}
		}
	}
	return parts, nil
}

// process runs the batch and turns a panic in the pipeline into an error.
func (h *DocHandler) process(c *fiber.Ctx, files []models.UploadedFile) (res *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.docService.ProcessBatch(c.UserContext(), files), nil
}

func (h *DocHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Message:   "Server is running",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startedAt).Seconds(),
		Extractor: h.docService.ClientName(),
		MockMode:  h.cfg.MockMode(),
		Env:       h.cfg.AppEnv,
		Port:      h.cfg.HttpPort,
	})
}
