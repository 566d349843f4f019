package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Escribaup/jogo-empresarial/internal/game"
	"github.com/Escribaup/jogo-empresarial/internal/ledger"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) CreateGame(ctx context.Context, companyName string, initialBalance float64, seed int64) (game.Snapshot, error) {
	var out game.Snapshot
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", map[string]any{
		"company_name":    companyName,
		"initial_balance": initialBalance,
		"seed":            seed,
	}, &out, "")
	return out, err
}

func (c *Client) GameState(ctx context.Context, gameID string) (game.Snapshot, error) {
	var out game.Snapshot
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID), nil, &out, "")
	return out, err
}

func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	return c.jsonRequest(ctx, http.MethodDelete, gamePath(gameID), nil, nil, "")
}

func (c *Client) PlayQuarter(ctx context.Context, gameID string, d game.Decisions, idem string) (game.QuarterResult, error) {
	var out game.QuarterResult
	err := c.jsonRequest(ctx, http.MethodPost, gamePath(gameID)+"/quarters", d, &out, idem)
	return out, err
}

func (c *Client) QuarterHistory(ctx context.Context, gameID string) ([]game.QuarterResult, error) {
	var out struct {
		Quarters []game.QuarterResult `json:"quarters"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID)+"/quarters", nil, &out, "")
	return out.Quarters, err
}

func (c *Client) Ledger(ctx context.Context, gameID string) ([]ledger.Transaction, error) {
	var out struct {
		Transactions []ledger.Transaction `json:"transactions"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID)+"/ledger", nil, &out, "")
	return out.Transactions, err
}

func (c *Client) Statements(ctx context.Context, gameID string) (ledger.Statements, error) {
	var out ledger.Statements
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID)+"/statements", nil, &out, "")
	return out, err
}

func (c *Client) FinancialReport(ctx context.Context, gameID string) (game.FinancialReport, error) {
	var out game.FinancialReport
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID)+"/reports/financial", nil, &out, "")
	return out, err
}

func (c *Client) MarketReport(ctx context.Context, gameID string) (game.MarketReport, error) {
	var out game.MarketReport
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(gameID)+"/reports/market", nil, &out, "")
	return out, err
}

func (c *Client) Advice(ctx context.Context, gameID, question string) (string, error) {
	var out struct {
		Advice string `json:"advice"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, gamePath(gameID)+"/advice", map[string]any{
		"question": question,
	}, &out, "")
	return out.Advice, err
}

func gamePath(gameID string) string {
	return "/v1/games/" + url.PathEscape(gameID)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any, idem string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idem != "" {
		req.Header.Set("Idempotency-Key", idem)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
