package twocaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Transport performs one authenticated POST against the captcha service.
// It merges the fixed default payload (the clientKey credential) into the
// outgoing body, reports service-level failures (nonzero errorId) as
// *APIError, and otherwise decodes the response body into out.
type Transport interface {
	Post(ctx context.Context, path string, body map[string]any, out any) error
}

// httpTransport is the production Transport on top of net/http.
type httpTransport struct {
	baseURL  string
	defaults map[string]any
	client   *http.Client
}

func newHTTPTransport(baseURL string, defaults map[string]any, hc *http.Client) *httpTransport {
	return &httpTransport{baseURL: baseURL, defaults: defaults, client: hc}
}

func (t *httpTransport) Post(ctx context.Context, path string, body map[string]any, out any) error {
	merged := make(map[string]any, len(t.defaults)+len(body))
	for k, v := range t.defaults {
		merged[k] = v
	}
	for k, v := range body {
		merged[k] = v
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("2captcha: marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("2captcha: %s HTTP %d: %s", path, resp.StatusCode, truncateBytes(data, 200))
	}

	var env struct {
		ErrorID          int    `json:"errorId"`
		ErrorCode        string `json:"errorCode"`
		ErrorDescription string `json:"errorDescription"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("2captcha: decode %s response: %w", path, err)
	}
	if env.ErrorID != 0 {
		slog.Debug("2captcha API error",
			slog.String("path", path),
			slog.Int("errorId", env.ErrorID),
			slog.String("code", env.ErrorCode))
		return &APIError{ErrorID: env.ErrorID, Code: env.ErrorCode, Description: env.ErrorDescription}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("2captcha: decode %s response: %w", path, err)
	}
	return nil
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
