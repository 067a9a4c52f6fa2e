package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

const (
	defaultAskTimeout = 30 * time.Second

	// promptTemplate wraps the normalized question in the Mistral
	// instruct format and asks for a concise answer.
	promptTemplate = "<s>[INST] Answer the following question concisely and accurately:\n\nQuestion: %s\n\nAnswer: [/INST]"

	// noAnswerFallback is returned verbatim when a 200 record carries
	// no generated_text field.
	noAnswerFallback = "No response generated"
)

// GenerationParams are the sampling options sent with every request.
type GenerationParams struct {
	MaxNewTokens   int
	Temperature    float64
	TopP           float64
	ReturnFullText bool
}

// DefaultGenerationParams returns the stock sampling options.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxNewTokens:   500,
		Temperature:    0.7,
		TopP:           0.95,
		ReturnFullText: false,
	}
}

// Config holds the per-process inference settings. It is built once at
// startup and never mutated; the endpoint URL is external configuration
// because the provider has changed its URL form before.
type Config struct {
	EndpointURL string
	Timeout     time.Duration
	Params      GenerationParams
}

// HuggingFaceClient calls a Hugging Face style hosted-inference endpoint.
type HuggingFaceClient struct {
	cfg  Config
	http *http.Client
}

// NewHuggingFaceClient builds a client with defaults filled in.
func NewHuggingFaceClient(cfg Config) (*HuggingFaceClient, error) {
	if cfg.EndpointURL == "" {
		return nil, fmt.Errorf("endpoint url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAskTimeout
	}
	if cfg.Params == (GenerationParams{}) {
		cfg.Params = DefaultGenerationParams()
	}
	return &HuggingFaceClient{cfg: cfg, http: &http.Client{}}, nil
}

// BuildPrompt interpolates the question into the instruction template.
func BuildPrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}

type askPayload struct {
	Inputs     string        `json:"inputs"`
	Parameters askParameters `json:"parameters"`
}

type askParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generationRecord struct {
	GeneratedText *string `json:"generated_text"`
}

// Ask issues exactly one POST to the configured endpoint and maps the
// result onto the Outcome taxonomy. The call is bounded by the
// configured timeout layered onto the caller's context; the client
// never retries and retains nothing between calls.
func (c *HuggingFaceClient) Ask(ctx context.Context, question, credential string) Outcome {
	body, err := json.Marshal(askPayload{
		Inputs: BuildPrompt(question),
		Parameters: askParameters{
			MaxNewTokens:   c.cfg.Params.MaxNewTokens,
			Temperature:    c.cfg.Params.Temperature,
			TopP:           c.cfg.Params.TopP,
			ReturnFullText: c.cfg.Params.ReturnFullText,
		},
	})
	if err != nil {
		return failure(FailureUnexpected, err.Error())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return failure(FailureUnexpected, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(FailureUnexpected, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return failure(FailureAPI, fmt.Sprintf("%d: %s", resp.StatusCode, apiErrorMessage(raw)))
	}
	return parseGeneration(raw)
}

// classifyTransport maps a failed exchange onto the Outcome taxonomy:
// connection-level failures first, then timeouts, then everything else.
func classifyTransport(err error) Outcome {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.As(err, &dnsErr),
		errors.As(err, &opErr) && !opErr.Timeout():
		return failure(FailureConnection, "could not connect to endpoint")
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return failure(FailureTimeout, "request exceeded time budget")
	default:
		return failure(FailureUnexpected, err.Error())
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseGeneration interprets a 200 body. The endpoint is expected to
// return a non-empty JSON array of records; the first record's
// generated_text is the answer.
func parseGeneration(raw []byte) Outcome {
	var records []generationRecord
	if err := json.Unmarshal(raw, &records); err != nil || len(records) == 0 {
		return failure(FailureInvalidResponse, "response body did not match expected shape")
	}
	text := noAnswerFallback
	if records[0].GeneratedText != nil {
		text = *records[0].GeneratedText
	}
	return answer(strings.TrimSpace(text))
}

// apiErrorMessage extracts a human-readable message from a non-200
// body: the JSON error field, else detail, else the raw body text.
func apiErrorMessage(raw []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return string(raw)
}
