// Package openai implements the chat-completions client used by the
// demo quota gateway. The model and sampling temperature are fixed;
// only the transcript varies per request.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/config"
	"github.com/qinzstore/storefront/internal/model"
)

const (
	chatModel       = "gpt-4o-mini"
	chatTemperature = 0.7
	defaultTimeout  = 60 * time.Second
)

// Client calls the chat-completions endpoint.
type Client struct {
	cfg  config.OpenAI
	http *http.Client
}

// New returns a Client for the given settings. A nil httpClient gets a
// default client with a request timeout sized for completions.
func New(cfg config.OpenAI, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []model.ChatTurn `json:"messages"`
	Temperature float64          `json:"temperature"`
	Stream      bool             `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Configured reports whether the completion-API credential is set.
// Handlers check this before spending quota bookkeeping on a request
// that can only fail.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// Complete forwards the transcript and returns the first completion's
// text. A structurally empty response yields an empty string, not an
// error; upstream failures propagate the upstream status and body.
func (c *Client) Complete(ctx context.Context, messages []model.ChatTurn) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperr.Config("server missing OPENAI_API_KEY")
	}

	body, err := json.Marshal(chatRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: chatTemperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.Upstream(0, fmt.Sprintf("completion request failed: %v", err), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Upstream(resp.StatusCode, "completion response unreadable", nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.Upstream(resp.StatusCode, "completion API error", raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperr.Upstream(resp.StatusCode, "completion response unparsable", raw)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
