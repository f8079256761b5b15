package services

import (
	"context"
	"fmt"
	"net/url"
	"project_analysis_backend/models"
	"time"

	"github.com/JexSrs/go-ollama"
)

// OllamaExtractionClient runs extraction against a local Ollama server.
type OllamaExtractionClient struct {
	client  *ollama.Ollama
	model   string
	timeout time.Duration
}

func NewOllamaExtractionClient(host, model string, timeout time.Duration) (*OllamaExtractionClient, error) {
	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}
	client := ollama.New(*ollamaURL)
	// Bounds the request goroutine after Extract has already given up on it.
	client.Http.Timeout = 2 * timeout
	return &OllamaExtractionClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *OllamaExtractionClient) Name() string { return "ollama" }

type ollamaReply struct {
	text string
	err  error
}

func (c *OllamaExtractionClient) Extract(ctx context.Context, segment string, isFirst bool) (*models.AnalysisResult, error) {
	ctx, cancel := withCallTimeout(ctx, c.timeout)
	defer cancel()

	// Generate takes no context, so the deadline is enforced here.
	done := make(chan ollamaReply, 1)
	go func() {
		res, err := c.client.Generate(
			c.client.Generate.WithModel(c.model),
			c.client.Generate.WithSystem(extractionSystemPrompt),
			c.client.Generate.WithPrompt(BuildExtractionPrompt(segment, isFirst)),
		)
		if err != nil {
			done <- ollamaReply{err: err}
			return
		}
		if !res.Done {
			done <- ollamaReply{err: fmt.Errorf("ollama generate did not finish")}
			return
		}
		done <- ollamaReply{text: res.Response}
	}()

	select {
	case <-ctx.Done():
		return nil, models.NewExtractionError("Ollama request failed", ctx.Err())
	case reply := <-done:
		if reply.err != nil {
			return nil, models.NewExtractionError("Ollama request failed", reply.err)
		}
		return ParseAnalysis(reply.text)
	}
}
