package models

import "time"

// UploadedFile is a staged upload. Path is read once by the extractor and the
// file is removed after the extraction attempt.
type UploadedFile struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ReceivedAt   time.Time `json:"received_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Extractor string    `json:"extractor"`
	MockMode  bool      `json:"mockMode"`
	Env       string    `json:"env"`
	Port      string    `json:"port"`
}
