package services

import (
	"context"
	"fmt"
	"os"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/utils"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Extractor reads the text out of a staged upload.
type Extractor interface {
	Extract(ctx context.Context, file models.UploadedFile) (string, error)
}

type DocumentService struct {
	extractor      Extractor
	client         ExtractionClient
	tokenThreshold int
	chunkSize      int
}

func NewDocumentService(extractor Extractor, client ExtractionClient, tokenThreshold, chunkSize int) *DocumentService {
	return &DocumentService{
		extractor:      extractor,
		client:         client,
		tokenThreshold: tokenThreshold,
		chunkSize:      chunkSize,
	}
}

func (s *DocumentService) ClientName() string {
	return s.client.Name()
}

// ProcessFile analyzes one staged upload and always deletes it. Failures are
// returned as a result whose description starts with "Error:".
func (s *DocumentService) ProcessFile(ctx context.Context, file models.UploadedFile) *models.AnalysisResult {
	res, err := s.processFile(ctx, file)
	if err != nil {
		return models.FailedResult(err)
	}
	return res
}

func (s *DocumentService) processFile(ctx context.Context, file models.UploadedFile) (*models.AnalysisResult, error) {
	defer removeStaged(file.Path)

	start := time.Now()
	text, err := s.extractor.Extract(ctx, file)
	if err != nil {
		logging.Logger.Error("fail extract", "error", err, "file", file.OriginalName)
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		err := models.NewExtractionError("No text content found in document", nil)
		logging.Logger.Error("fail extract", "error", err, "file", file.OriginalName)
		return nil, err
	}

	tokens := utils.EstimateTokens(text)
	logging.Logger.Info("Extracted text",
		"file", file.OriginalName,
		"chars", utf8.RuneCountInString(text),
		"tokens", tokens,
	)

	var res *models.AnalysisResult
	if tokens <= s.tokenThreshold {
		res, err = s.client.Extract(ctx, text, true)
	} else {
		res, err = s.processChunks(ctx, file.OriginalName, text)
	}
	if err != nil {
		logging.Logger.Error("fail analyze", "error", err, "file", file.OriginalName)
		return nil, err
	}

	logging.Logger.Info("Analyzed file",
		"file", file.OriginalName,
		"project", res.ProjectName,
		"duration", time.Since(start),
	)
	return res.Normalize(), nil
}

// processChunks runs the chunks strictly in order. A failing chunk is logged
// and skipped; the file fails only when no chunk succeeds.
func (s *DocumentService) processChunks(ctx context.Context, name, text string) (*models.AnalysisResult, error) {
	chunks := utils.ChunkText(text, s.chunkSize)
	logging.Logger.Info("Document is large, splitting into chunks", "file", name, "chunks", len(chunks))

	results := make([]*models.AnalysisResult, 0, len(chunks))
	var lastErr error
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.client.Extract(ctx, chunk, i == 0)
		if err != nil {
			logging.Logger.Warn("skipping chunk", "error", err, "file", name, "chunk", i+1, "total", len(chunks))
			lastErr = err
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("all %d chunks failed: %w", len(chunks), lastErr)
	}
	return MergeResults(results), nil
}

// ProcessBatch analyzes every file concurrently and merges the results in
// upload order. Failed files are folded in as degraded results and listed in
// Errors.
func (s *DocumentService) ProcessBatch(ctx context.Context, files []models.UploadedFile) *models.AnalysisResult {
	results := make([]*models.AnalysisResult, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			// a recover further up the stack cannot see this goroutine
			defer func() {
				if r := recover(); r != nil {
					logging.Logger.Error("panic while processing file", "file", file.OriginalName, "panic", r)
					failures[i] = fmt.Errorf("panic: %v", r)
					results[i] = models.FailedResult(failures[i])
				}
			}()
			res, err := s.processFile(ctx, file)
			if err != nil {
				failures[i] = err
				res = models.FailedResult(err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	merged := MergeResults(results)
	for i, err := range failures {
		if err == nil {
			continue
		}
		merged.Errors = append(merged.Errors, models.FileError{
			Error:   fmt.Sprintf("Failed to process %s", files[i].OriginalName),
			Details: err.Error(),
		})
	}
	return merged
}

func removeStaged(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Logger.Warn("failed to remove staged file", "path", path, "error", err)
	}
}
