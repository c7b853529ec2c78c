package twocaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// TurnstileSolver handles Cloudflare Turnstile challenges without a proxy.
type TurnstileSolver struct {
	client *Client
}

// TurnstileRequest describes one Turnstile challenge. Optional fields are
// omitted from the wire payload when unset.
type TurnstileRequest struct {
	// WebsiteURL is the full URL of the page with the challenge. Required.
	WebsiteURL string

	// WebsiteKey is the Turnstile sitekey. Required.
	WebsiteKey string

	// Action, Data and PageData come from the cData/chlPageData challenge
	// parameters on Challenge pages; standalone widgets leave them empty.
	Action   string
	Data     string
	PageData string
}

func (r TurnstileRequest) payload() map[string]any {
	p := map[string]any{
		"websiteURL": r.WebsiteURL,
		"websiteKey": r.WebsiteKey,
	}
	if r.Action != "" {
		p["action"] = r.Action
	}
	if r.Data != "" {
		p["data"] = r.Data
	}
	if r.PageData != "" {
		p["pagedata"] = r.PageData
	}
	return p
}

// TurnstileSolution is the solution payload of a ready Turnstile task.
type TurnstileSolution struct {
	Token     string `json:"token"`
	UserAgent string `json:"userAgent"`
}

// TurnstileResult is a terminal Turnstile task with its solution decoded.
type TurnstileResult struct {
	Task
	Solution *TurnstileSolution
}

func turnstileResultFromTask(t *Task) (*TurnstileResult, error) {
	res := &TurnstileResult{Task: *t}
	if len(t.Solution) > 0 {
		var sol TurnstileSolution
		if err := json.Unmarshal(t.Solution, &sol); err != nil {
			return nil, fmt.Errorf("2captcha: decode turnstile solution: %w", err)
		}
		res.Solution = &sol
	}
	return res, nil
}

// CreateTask submits the challenge and waits for its terminal state, then
// returns the typed result.
func (s *TurnstileSolver) CreateTask(ctx context.Context, req TurnstileRequest) (*TurnstileResult, error) {
	if req.WebsiteURL == "" || req.WebsiteKey == "" {
		return nil, errors.New("2captcha: turnstile: WebsiteURL and WebsiteKey are required")
	}

	rt, err := s.client.CreateTask(ctx, TaskTypeTurnstile, req.payload())
	if err != nil {
		return nil, err
	}
	task, err := rt.WaitUntilCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return turnstileResultFromTask(task)
}
