package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR"  envDefault:":8080"`
	FrontendURL string `env:"FRONTEND_URL"`
	DBPath      string `env:"DB_PATH"      envDefault:"instagist.sqlite"`

	Provider        string `env:"SUMMARY_PROVIDER"  envDefault:"ollama"`
	OllamaURL       string `env:"OLLAMA_URL"        envDefault:"http://localhost:11434"`
	OllamaModel     string `env:"OLLAMA_MODEL"      envDefault:"gemma:2b"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL"      envDefault:"gemini-2.0-flash"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL"`

	SummaryTimeout time.Duration `env:"SUMMARY_TIMEOUT"     envDefault:"120s"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT"       envDefault:"20s"`
	MaxInputChars  int           `env:"MAX_INPUT_CHARS"     envDefault:"200000"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES"    envDefault:"5242880"`
	RetentionDays  int           `env:"RETENTION_DAYS"      envDefault:"30"`
	RateLimitEvery time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"2s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.AnthropicAPIKey = strings.TrimSpace(cfg.AnthropicAPIKey)

	return cfg, nil
}
