package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"project_analysis_backend/models"
	"strings"
)

// TextExtractor turns a staged upload into plain text based on its extension.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(ctx context.Context, file models.UploadedFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := file.OriginalName
	if name == "" {
		name = file.Path
	}
	ext := strings.ToLower(filepath.Ext(name))

	switch ext {
	case ".pdf":
		text, err := extractPDF(file.Path)
		if err != nil {
			return "", models.NewExtractionError("Failed to parse PDF", err)
		}
		return text, nil
	case ".txt", ".md", ".markdown":
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	default:
		return "", &models.UnsupportedFileTypeError{Ext: ext}
	}
}
