// Package backend is a client for the trading system's reporting API: one
// read endpoint per monitored subsystem and a roll state command.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rustyeddy/dashboard/report"
)

// DefaultURL is where the reporting API listens on the trading host.
const DefaultURL = "http://127.0.0.1:5000"

// Endpoint paths.
const (
	PathCapital   = "/capital"
	PathCosts     = "/costs"
	PathForex     = "/forex"
	PathLiquidity = "/liquidity"
	PathPandL     = "/pandl"
	PathProcesses = "/processes"
	PathReconcile = "/reconcile"
	PathRisk      = "/risk"
	PathRolls     = "/rolls"
	PathStrategy  = "/strategy"
	PathTrades    = "/trades"
)

// maxErrorBody caps how much of a failed response is kept in an APIError.
const maxErrorBody = 4096

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the reporting API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL. A zero timeout means
// requests only end when their context does.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Capital(ctx context.Context) (report.Capital, error) {
	var v report.Capital
	return v, c.get(ctx, PathCapital, &v)
}

func (c *Client) Costs(ctx context.Context) (report.Costs, error) {
	var v report.Costs
	return v, c.get(ctx, PathCosts, &v)
}

func (c *Client) Forex(ctx context.Context) (report.Forex, error) {
	var v report.Forex
	return v, c.get(ctx, PathForex, &v)
}

func (c *Client) Liquidity(ctx context.Context) (report.Liquidity, error) {
	var v report.Liquidity
	return v, c.get(ctx, PathLiquidity, &v)
}

func (c *Client) PandL(ctx context.Context) (report.PandL, error) {
	var v report.PandL
	return v, c.get(ctx, PathPandL, &v)
}

func (c *Client) Processes(ctx context.Context) (report.Processes, error) {
	var v report.Processes
	return v, c.get(ctx, PathProcesses, &v)
}

func (c *Client) Reconcile(ctx context.Context) (report.Reconcile, error) {
	var v report.Reconcile
	return v, c.get(ctx, PathReconcile, &v)
}

func (c *Client) Risk(ctx context.Context) (report.Risk, error) {
	var v report.Risk
	return v, c.get(ctx, PathRisk, &v)
}

func (c *Client) Rolls(ctx context.Context) (report.Rolls, error) {
	var v report.Rolls
	return v, c.get(ctx, PathRolls, &v)
}

func (c *Client) Strategy(ctx context.Context) (report.Strategy, error) {
	var v report.Strategy
	return v, c.get(ctx, PathStrategy, &v)
}

func (c *Client) Trades(ctx context.Context) (report.Trades, error) {
	var v report.Trades
	return v, c.get(ctx, PathTrades, &v)
}

// PostRoll submits a roll state command and decodes the reply.
func (c *Client) PostRoll(ctx context.Context, cmd report.RollCommand) (report.RollResponse, error) {
	if err := cmd.Validate(); err != nil {
		return report.RollResponse{}, fmt.Errorf("roll command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathRolls, strings.NewReader(cmd.Form().Encode()))
	if err != nil {
		return report.RollResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, PathRolls)
	if err != nil {
		return report.RollResponse{}, err
	}

	resp, err := report.DecodeRollResponse(body)
	if err != nil {
		return report.RollResponse{}, fmt.Errorf("POST %s: %w", PathRolls, err)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, path string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: execute request: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", req.Method, path, err)
	}
	return body, nil
}
