package services

import (
	"context"
	"project_analysis_backend/models"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAITemperature = 0.7
	openAIMaxTokens   = 2000
)

// LiveExtractionClient calls the OpenAI chat completions API, or any
// compatible server when baseURL is set.
type LiveExtractionClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewLiveExtractionClient(apiKey, model, baseURL string, timeout time.Duration) *LiveExtractionClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// a failed chunk is skipped, not retried
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/"))
	}
	return &LiveExtractionClient{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

func (c *LiveExtractionClient) Name() string { return "openai" }

func (c *LiveExtractionClient) Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error) {
	ctx, cancel := withCallTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage(BuildExtractionPrompt(segment, isFirst)),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(openAITemperature),
		MaxTokens:   openai.Int(openAIMaxTokens),
	})
	if err != nil {
		return nil, models.NewExtractionError("OpenAI request failed", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, models.NewExtractionError("No content in AI response", nil)
	}
	return ParseAnalysis(resp.Choices[0].Message.Content)
}
