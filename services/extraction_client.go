package services

import (
	"context"
	"encoding/json"
	"fmt"
	"project_analysis_backend/config"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/utils"
	"strings"
	"time"
)

// ExtractionClient turns one text segment into an analysis. isFirst selects
// the full-schema prompt; later segments only contribute additions.
type ExtractionClient interface {
	Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error)
	Name() string
}

const extractionSystemPrompt = "You are an AI assistant that helps analyze project documents and extract key information. " +
	"Focus on extracting the most important information and be concise in your responses."

const analysisSchema = `{
  "projectName": "string (brief project name)",
  "description": "string (1-2 paragraph summary)",
  "phases": [
    { "name": "string (phase name)", "description": "string (1-2 sentences)" }
  ],
  "personas": [
    {
      "name": "string (persona name)",
      "description": "string (1-2 sentences)",
      "goals": ["string (bullet points)"],
      "painPoints": ["string (bullet points)"]
    }
  ],
  "requirements": ["string (key requirements, one per item)"]
}`

func BuildExtractionPrompt(segment string, isFirst bool) string {
	var builder strings.Builder
	if isFirst {
		builder.WriteString("Analyze the following document and extract key project information.\n")
		builder.WriteString("Be concise and focus on the most important details.\n\n")
		builder.WriteString("Document content:\n")
		builder.WriteString(segment)
		builder.WriteString("\n\nReturn the information in JSON format with the following structure:\n")
		builder.WriteString(analysisSchema)
		builder.WriteString("\n\nImportant: Only return valid JSON. Do not include any other text.")
		return builder.String()
	}
	builder.WriteString("The following is another section of the same document. ")
	builder.WriteString("Extract any additional information that should be added to the project analysis.\n\n")
	builder.WriteString("Additional content:\n")
	builder.WriteString(segment)
	builder.WriteString("\n\nReturn only a JSON object with any new or updated information in the same format as before.")
	return builder.String()
}

// ParseAnalysis decodes a model reply after stripping code fences and any
// prose around the JSON object.
func ParseAnalysis(raw string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, models.NewExtractionError("No content in AI response", nil)
	}
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(utils.RecoverJSONObject(raw)), &result); err != nil {
		return nil, models.NewExtractionError("Failed to parse AI response as JSON", err)
	}
	return result.Normalize(), nil
}

// NewExtractionClient picks the client for the configured provider, or the
// mock when no credential is available. Live clients are wrapped in the
// result cache when one is given.
func NewExtractionClient(cfg *config.Config, resultCache *ResultCache) (ExtractionClient, error) {
	if cfg.MockMode() {
		logging.Logger.Warn("Using mock extraction client", "provider", cfg.LLMProvider)
		return NewMockExtractionClient(), nil
	}

	var (
		client ExtractionClient
		model  string
		err    error
	)
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client = NewLiveExtractionClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.ExtractionTimeout)
		model = cfg.OpenAIModel
	case config.ProviderOllama:
		client, err = NewOllamaExtractionClient(cfg.OllamaHost, cfg.OllamaModel, cfg.ExtractionTimeout)
		model = cfg.OllamaModel
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Using live extraction client", "provider", client.Name(), "model", model)

	if resultCache == nil {
		return client, nil
	}
	return NewCachedExtractionClient(client, model, resultCache), nil
}

// withCallTimeout bounds one model call; zero means no extra bound.
func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
