package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/observability"
)

// CompletionClient is the outbound boundary to an OpenAI-compatible chat
// completion endpoint. Exactly one attempt per call; callers own any retry
// policy and the request deadline comes in through ctx.
type CompletionClient interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}

type GroqConfig struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	Timeout      time.Duration
}

type groqClient struct {
	log        *logger.Logger
	cfg        GroqConfig
	httpClient *http.Client
}

func NewGroqClient(log *logger.Logger, cfg GroqConfig) (CompletionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GROQ_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "llama-3.1-8b-instant"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &groqClient{
		log:        log.With("service", "GroqClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const completionSystemMessage = "You are a helpful assistant inside a mental wellbeing application. Follow the user's formatting instructions exactly."

func (c *groqClient) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = c.cfg.DefaultModel
	}

	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: completionSystemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("Sending chat completion request", "model", model, "prompt_len", len(prompt))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.CompletionUpstreamErrorsTotal.Inc()
		return "", &UpstreamError{Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		observability.CompletionUpstreamErrorsTotal.Inc()
		return "", &UpstreamError{Status: resp.StatusCode, Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.CompletionUpstreamErrorsTotal.Inc()
		c.log.Error("Chat completion returned non-2xx", "status", resp.StatusCode, "body", string(raw))
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		observability.CompletionUpstreamErrorsTotal.Inc()
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("decode completion response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		observability.CompletionUpstreamErrorsTotal.Inc()
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("completion response has no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}
