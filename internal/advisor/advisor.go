// Package advisor asks a chat-completions endpoint for quarterly business
// advice. The advisor is optional: with no base URL configured the client is
// disabled and every request reports ErrUnavailable, which callers treat as
// non-fatal.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("advisor unavailable")

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

const systemPrompt = "You are a seasoned business consultant advising the CEO of a manufacturing " +
	"company in a quarterly simulation. You receive the company's ledger and " +
	"current standing. Give concrete, numbers-driven advice for next quarter's " +
	"decisions: price, production volume, marketing spend, capacity investment, " +
	"R&D and donations. Be concise."

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New builds an advisory client. An empty baseURL disables the advisor; a
// zero timeout falls back to the default.
func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Advise sends the serialized game state plus the player's question and
// returns the model's reply.
func (c *Client) Advise(ctx context.Context, gameState, question string) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}
	if strings.TrimSpace(question) == "" {
		question = "What should I change next quarter?"
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: gameState + "\n\nQuestion: " + question},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advice: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
