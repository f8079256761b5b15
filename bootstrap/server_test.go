package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"project_analysis_backend/config"
	"project_analysis_backend/models"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HttpPort:          "5001",
		AppEnv:            "development",
		UploadDir:         t.TempDir(),
		MaxFileSize:       10 << 20,
		TokenThreshold:    7000,
		ChunkSize:         3000,
		ExtractionTimeout: time.Second,
		LLMProvider:       config.ProviderOpenAI,
		OpenAIAPIKey:      config.OpenAIKeyPlaceholder,
		ResultCacheTTL:    time.Minute,
	}
}

func TestNewServer_LegacyRouteEndToEnd(t *testing.T) {
	app, err := NewApp(testConfig(t))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Shutdown()
	server := NewServer(app)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, _ := w.CreateFormFile("documents", "brief.md")
	_, _ = fw.Write([]byte("# Brief\n\nBuild a todo app."))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/process-documents", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := server.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing CORS header")
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Error("missing request id")
	}
	var res models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.ProjectName == "" || len(res.Requirements) == 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestNewServer_Health(t *testing.T) {
	app, err := NewApp(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	server := NewServer(app)

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if !health.MockMode || health.Extractor != "mock" {
		t.Errorf("placeholder key should select the mock client: %+v", health)
	}
}

func TestNewApp_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "bard"
	cfg.OpenAIAPIKey = "sk-real"
	if _, err := NewApp(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewApp_UnreachableRedisIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.Infrastructure.Redis != nil {
		t.Error("redis should be skipped when unreachable")
	}
}
