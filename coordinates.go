package twocaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// CoordinatesSolver handles image captchas where the worker clicks points
// on a picture ("click the apples", custom sliders).
type CoordinatesSolver struct {
	client *Client
}

// CoordinatesRequest describes one coordinates captcha. Optional fields
// are omitted from the wire payload entirely when unset — the service
// distinguishes an absent field from an explicit empty value.
type CoordinatesRequest struct {
	// Body is the base64-encoded captcha image or a data URI. Required.
	Body string

	// Comment is a text hint for the worker, e.g. "click all apples".
	Comment string

	// ImgInstructions is an additional instruction image, base64-encoded.
	ImgInstructions string

	// MinClicks / MaxClicks bound the number of clicks when the captcha
	// requires a specific count. Nil means no bound.
	MinClicks *int
	MaxClicks *int
}

func (r CoordinatesRequest) payload() map[string]any {
	p := map[string]any{"body": r.Body}
	if r.Comment != "" {
		p["comment"] = r.Comment
	}
	if r.ImgInstructions != "" {
		p["imgInstructions"] = r.ImgInstructions
	}
	if r.MinClicks != nil {
		p["minClicks"] = *r.MinClicks
	}
	if r.MaxClicks != nil {
		p["maxClicks"] = *r.MaxClicks
	}
	return p
}

// Coordinate is one point the worker clicked.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CoordinatesSolution is the solution payload of a ready coordinates task.
type CoordinatesSolution struct {
	Coordinates []Coordinate `json:"coordinates"`
}

// CoordinatesResult is a terminal coordinates task with its solution
// decoded. The embedded Task carries the generic fields and predicates.
type CoordinatesResult struct {
	Task
	Solution *CoordinatesSolution
}

func coordinatesResultFromTask(t *Task) (*CoordinatesResult, error) {
	res := &CoordinatesResult{Task: *t}
	if len(t.Solution) > 0 {
		var sol CoordinatesSolution
		if err := json.Unmarshal(t.Solution, &sol); err != nil {
			return nil, fmt.Errorf("2captcha: decode coordinates solution: %w", err)
		}
		res.Solution = &sol
	}
	return res, nil
}

// CreateTask submits the captcha and waits for its terminal state, then
// returns the typed result. Service errors propagate unchanged as
// *APIError.
func (s *CoordinatesSolver) CreateTask(ctx context.Context, req CoordinatesRequest) (*CoordinatesResult, error) {
	if req.Body == "" {
		return nil, errors.New("2captcha: coordinates: Body is required")
	}

	rt, err := s.client.CreateTask(ctx, TaskTypeCoordinates, req.payload())
	if err != nil {
		return nil, err
	}
	task, err := rt.WaitUntilCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return coordinatesResultFromTask(task)
}
