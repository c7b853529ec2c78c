package twocaptcha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.2captcha.com"

// balanceWarnLevel is the balance below which Balance logs a warning.
const balanceWarnLevel = 1.0

// Config holds all configuration for the 2captcha client.
type Config struct {
	// APIKey is the 2captcha account key, sent as clientKey in every
	// request body. Required unless Transport is set.
	APIKey string

	// BaseURL overrides the service endpoint. Default: https://api.2captcha.com
	BaseURL string

	// PollInterval is the wait between result polls. Default: 10s
	// (the service-recommended cadence).
	PollInterval time.Duration

	// SolveTimeout bounds how long WaitUntilCompleted polls a single
	// task. Zero means unbounded; cancel via context instead.
	SolveTimeout time.Duration

	// HTTPClient overrides the http.Client used by the default transport.
	HTTPClient *http.Client

	// Transport replaces the HTTP transport entirely. Used by tests.
	Transport Transport
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
}

// Client talks to the 2captcha task API. It is stateless apart from the
// credential and endpoint fixed at construction, so a single Client may
// drive any number of tasks concurrently.
type Client struct {
	transport Transport
	cfg       Config

	// Coordinates solves image captchas that require clicking points.
	Coordinates *CoordinatesSolver

	// Turnstile solves Cloudflare Turnstile challenges.
	Turnstile *TurnstileSolver
}

// NewClient creates a fully-wired 2captcha client.
func NewClient(cfg Config) (*Client, error) {
	cfg.defaults()

	if cfg.Transport == nil {
		if cfg.APIKey == "" {
			return nil, errors.New("2captcha: APIKey is required")
		}
		cfg.Transport = newHTTPTransport(cfg.BaseURL, map[string]any{"clientKey": cfg.APIKey}, cfg.HTTPClient)
	}

	c := &Client{transport: cfg.Transport, cfg: cfg}
	c.Coordinates = &CoordinatesSolver{client: c}
	c.Turnstile = &TurnstileSolver{client: c}
	return c, nil
}

// CreateTask submits a new task of the given type and returns a handle for
// polling it. The payload is the solver-specific task object; type is
// injected into a copy, the caller's map is not modified. Service
// rejections (bad key, zero balance, malformed payload) surface as
// *APIError and are not retried.
func (c *Client) CreateTask(ctx context.Context, taskType string, payload map[string]any) (*RunningTask, error) {
	task := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		task[k] = v
	}
	task["type"] = taskType

	var created Task
	if err := c.transport.Post(ctx, "/createTask", map[string]any{"task": task}, &created); err != nil {
		return nil, fmt.Errorf("2captcha: createTask: %w", err)
	}
	if created.TaskID == 0 {
		return nil, fmt.Errorf("2captcha: createTask: missing taskId in response")
	}

	slog.Info("captcha task created",
		slog.Int64("taskId", created.TaskID),
		slog.String("type", taskType))
	return &RunningTask{client: c, task: created}, nil
}

// GetTaskResult fetches the current state of a task. Single attempt, no
// retries; a nonzero errorId in the response surfaces as *APIError.
func (c *Client) GetTaskResult(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	if err := c.transport.Post(ctx, "/getTaskResult", map[string]any{"taskId": taskID}, &task); err != nil {
		return nil, fmt.Errorf("2captcha: getTaskResult: %w", err)
	}
	return &task, nil
}

// Balance returns the account balance. The service reuses /getTaskResult
// for this: a body without taskId yields a balance field instead of task
// state. The field arrives as either a JSON number or a string.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp struct {
		Balance any `json:"balance"`
	}
	if err := c.transport.Post(ctx, "/getTaskResult", nil, &resp); err != nil {
		return 0, err
	}

	var bal float64
	switch v := resp.Balance.(type) {
	case float64:
		bal = v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("2captcha: parse balance %q: %w", v, err)
		}
		bal = f
	case nil:
		return 0, fmt.Errorf("2captcha: missing balance in response")
	default:
		return 0, fmt.Errorf("2captcha: unexpected balance type %T", v)
	}

	if bal < balanceWarnLevel {
		slog.Warn("2captcha balance low", slog.Float64("balance", bal))
	}
	return bal, nil
}
