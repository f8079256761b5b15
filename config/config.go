package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	// OpenAIKeyPlaceholder is the value shipped in the sample .env file.
	OpenAIKeyPlaceholder = "your_openai_api_key_here"
)

type Config struct {
	HttpPort     string `yaml:"port"`
	AppEnv       string `yaml:"app_env"`
	AllowOrigins string `yaml:"allow_origins"`

	// uploads
	UploadDir   string `yaml:"upload_dir"`
	MaxFileSize int64  `yaml:"max_file_size"`

	// extraction
	TokenThreshold    int           `yaml:"token_threshold"`
	ChunkSize         int           `yaml:"chunk_size"`
	ExtractionTimeout time.Duration `yaml:"extraction_timeout"`
	LLMProvider       string        `yaml:"llm_provider"`
	OpenAIAPIKey      string        `yaml:"openai_api_key"`
	OpenAIModel       string        `yaml:"openai_model"`
	OpenAIBaseURL     string        `yaml:"openai_base_url"`
	OllamaHost        string        `yaml:"ollama_host"`
	OllamaModel       string        `yaml:"ollama_model"`
	ForceMock         bool          `yaml:"mock_mode"`

	// Redis result cache, optional
	RedisURL       string        `yaml:"redis_url"`
	ResultCacheTTL time.Duration `yaml:"result_cache_ttl"`
}

// LoadConfig reads the optional YAML file named by CONFIG_FILE, then lets
// environment variables override it, then fills defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	envString("PORT", &c.HttpPort)
	envString("APP_ENV", &c.AppEnv)
	envString("ALLOW_ORIGINS", &c.AllowOrigins)
	envString("UPLOAD_DIR", &c.UploadDir)
	envString("LLM_PROVIDER", &c.LLMProvider)
	envString("OPENAI_API_KEY", &c.OpenAIAPIKey)
	envString("OPENAI_MODEL", &c.OpenAIModel)
	envString("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	envString("OLLAMA_HOST", &c.OllamaHost)
	envString("OLLAMA_MODEL", &c.OllamaModel)
	envString("REDIS_URL", &c.RedisURL)

	if v, ok := os.LookupEnv("MAX_FILE_SIZE"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_FILE_SIZE %q: %w", v, err)
		}
		c.MaxFileSize = n
	}
	if err := envInt("TOKEN_THRESHOLD", &c.TokenThreshold); err != nil {
		return err
	}
	if err := envInt("CHUNK_SIZE", &c.ChunkSize); err != nil {
		return err
	}
	if err := envDuration("EXTRACTION_TIMEOUT", &c.ExtractionTimeout); err != nil {
		return err
	}
	if err := envDuration("RESULT_CACHE_TTL", &c.ResultCacheTTL); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("MOCK_MODE"); ok && v != "" {
		c.ForceMock = v == "true" || v == "1"
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HttpPort == "" {
		c.HttpPort = "5001"
	}
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 10 * 1024 * 1024
	}
	if c.TokenThreshold <= 0 {
		c.TokenThreshold = 7000
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 3000
	}
	if c.ExtractionTimeout <= 0 {
		c.ExtractionTimeout = 60 * time.Second
	}
	c.LLMProvider = strings.ToLower(c.LLMProvider)
	if c.LLMProvider == "" {
		c.LLMProvider = ProviderOpenAI
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4"
	}
	if c.OllamaModel == "" {
		c.OllamaModel = "llama3"
	}
	if c.ResultCacheTTL <= 0 {
		c.ResultCacheTTL = 30 * time.Minute
	}
}

// MockMode reports whether extraction must use the canned client: forced by
// MOCK_MODE, or no usable credential for the selected provider.
func (c *Config) MockMode() bool {
	if c.ForceMock {
		return true
	}
	if c.LLMProvider == ProviderOllama {
		return c.OllamaHost == ""
	}
	return c.OpenAIAPIKey == "" || strings.HasPrefix(c.OpenAIAPIKey, OpenAIKeyPlaceholder)
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
