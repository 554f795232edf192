package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
)

const (
	// DefaultOllamaURL is the local Ollama daemon.
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultModel is the chat model requested when none is configured.
	DefaultModel   = "llama2"
	defaultTimeout = 2 * time.Minute
	chatPath       = "/api/chat"
)

// ErrEmptyResponse is returned when the model answers without content.
var ErrEmptyResponse = errors.New("summary: empty model response")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OllamaConfig configures an OllamaClient.
type OllamaConfig struct {
	BaseURL    string
	Model      string
	HTTPClient httpDoer
	Timeout    time.Duration
	Logger     *slog.Logger
}

// OllamaClient summarizes through Ollama's non-streaming chat endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	client  httpDoer
	logger  *slog.Logger
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error"`
}

// NewOllamaClient applies defaults to cfg.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &OllamaClient{baseURL: baseURL, model: model, client: client, logger: cfg.Logger}
}

// Summarize sends messages and returns the assistant's reply.
func (c *OllamaClient) Summarize(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama chat: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama chat: decode: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama chat: %s", out.Error)
	}
	text := strings.TrimSpace(out.Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	logging.Info(logging.FromContext(ctx, c.logger), "summary generated",
		slog.String("model", c.model),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return text, nil
}
