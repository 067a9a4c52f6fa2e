package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"qa-agent/internal/app"
	"qa-agent/internal/httputil"
	"qa-agent/internal/inference"
	"qa-agent/internal/logger"
	"qa-agent/internal/normalize"
)

type askRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
	// APIKey optionally overrides the configured credential, mirroring
	// the form-field credential of the web UI.
	APIKey string `json:"api_key" validate:"omitempty"`
}

type askFailure struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log = logger.ForService(deps.Log, "webui")
	r := httputil.NewRouter(deps.Log)

	r.Get("/", indexHandler(deps))
	r.Post("/api/ask", askHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		deps.Log.Info("webui listening", "addr", addr, "model", deps.Config.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-ctx.Done():
			return nil
		case sig := <-stop:
			deps.Log.Info("shutting down", "signal", sig.String())
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("webui stopped", "err", err)
	}
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}

		// Validate request
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		credential := req.APIKey
		if credential == "" {
			credential = deps.Config.APIKey
		}
		if credential == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, map[string]any{
				"error": "an API key is required: set HUGGINGFACE_API_KEY or pass api_key",
			})
			return
		}

		exchangeID := uuid.NewString()
		res := normalize.Process(req.Question, deps.NormalizeMode())
		if res.Text == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
				"request_id": exchangeID,
				"error":      "question is empty after normalization",
			})
			return
		}

		out := deps.Asker.Ask(r.Context(), res.Text, credential)
		if !out.OK() {
			deps.Log.Warn("inference failed",
				"request_id", exchangeID,
				"kind", out.Failure.Kind,
				"detail", out.Failure.Detail,
			)
			httputil.WriteJSON(w, failureStatus(out.Failure.Kind), map[string]any{
				"request_id": exchangeID,
				"error":      askFailure{Kind: string(out.Failure.Kind), Detail: out.Failure.Detail},
			})
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"request_id":  exchangeID,
			"answer":      out.Answer,
			"normalized":  res.Text,
			"tokens":      res.Tokens,
			"token_count": res.TokenCount(),
			"model":       deps.Config.Model,
		})
	}
}

// failureStatus maps the outcome taxonomy onto HTTP statuses for the
// JSON API. The taxonomy itself lives in the outcome; this is rendering.
func failureStatus(kind inference.FailureKind) int {
	switch kind {
	case inference.FailureTimeout:
		return http.StatusGatewayTimeout
	case inference.FailureConnection, inference.FailureAPI, inference.FailureInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
