package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Inference endpoint. The provider has changed its URL form before,
	// so the base URL and model id are configuration, not constants.
	AskerProvider  string `env:"ASKER_PROVIDER" envDefault:"huggingface"` // "huggingface" (hosted inference API)
	APIKey         string `env:"HUGGINGFACE_API_KEY"`
	BaseURL        string `env:"INFERENCE_BASE_URL" envDefault:"https://api-inference.huggingface.co/models"`
	Model          string `env:"INFERENCE_MODEL" envDefault:"mistralai/Mistral-7B-Instruct-v0.2"`
	TimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`

	// Generation parameters
	MaxNewTokens   int     `env:"MAX_NEW_TOKENS" envDefault:"500"`
	Temperature    float64 `env:"TEMPERATURE" envDefault:"0.7"`
	TopP           float64 `env:"TOP_P" envDefault:"0.95"`
	ReturnFullText bool    `env:"RETURN_FULL_TEXT" envDefault:"false"`

	// Normalizer. Punctuation stripping matches the default question
	// pipeline; disable to keep punctuation in the normalized text.
	StripPunctuation bool `env:"STRIP_PUNCTUATION" envDefault:"true"`

	// Caller-side re-ask budget for the CLI. The client itself never
	// retries.
	AskRetries int `env:"ASK_RETRIES" envDefault:"0"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// EndpointURL assembles the full inference URL from base URL and model id.
func (c Config) EndpointURL() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), c.Model)
}

// RequestTimeout returns the per-call time budget as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
