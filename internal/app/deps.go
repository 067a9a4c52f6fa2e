package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"qa-agent/internal/config"
	"qa-agent/internal/inference"
	"qa-agent/internal/logger"
	"qa-agent/internal/normalize"
)

// Deps bundles common runtime dependencies for the front ends.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Asker  inference.Asker
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	// .env is optional; real environment variables win when both exist.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	asker, err := buildAsker(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize asker: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		Asker:  asker,
	}, nil
}

// NormalizeMode maps the configured preprocessing flag onto the
// normalizer mode.
func (d Deps) NormalizeMode() normalize.Mode {
	if d.Config.StripPunctuation {
		return normalize.StripPunctuation
	}
	return normalize.KeepPunctuation
}

func buildAsker(cfg config.Config, log *slog.Logger) (inference.Asker, error) {
	switch cfg.AskerProvider {
	case "huggingface":
		client, err := inference.NewHuggingFaceClient(inference.Config{
			EndpointURL: cfg.EndpointURL(),
			Timeout:     cfg.RequestTimeout(),
			Params: inference.GenerationParams{
				MaxNewTokens:   cfg.MaxNewTokens,
				Temperature:    cfg.Temperature,
				TopP:           cfg.TopP,
				ReturnFullText: cfg.ReturnFullText,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Hugging Face client: %w", err)
		}
		log.Info("using Hugging Face inference client", "model", cfg.Model)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid ASKER_PROVIDER: %s (valid option: huggingface)", cfg.AskerProvider)
	}
}
