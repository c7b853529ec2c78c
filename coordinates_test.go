package twocaptcha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCoordinatesRequestPayload(t *testing.T) {
	tests := map[string]struct {
		req  CoordinatesRequest
		want map[string]any
	}{
		"body only": {
			req:  CoordinatesRequest{Body: "aGVsbG8="},
			want: map[string]any{"body": "aGVsbG8="},
		},
		"click bounds": {
			req: CoordinatesRequest{Body: "aGVsbG8=", MinClicks: intPtr(1), MaxClicks: intPtr(3)},
			want: map[string]any{
				"body":      "aGVsbG8=",
				"minClicks": 1,
				"maxClicks": 3,
			},
		},
		"all fields": {
			req: CoordinatesRequest{
				Body:            "aGVsbG8=",
				Comment:         "click the apples",
				ImgInstructions: "aW5zdHI=",
				MinClicks:       intPtr(2),
				MaxClicks:       intPtr(2),
			},
			want: map[string]any{
				"body":            "aGVsbG8=",
				"comment":         "click the apples",
				"imgInstructions": "aW5zdHI=",
				"minClicks":       2,
				"maxClicks":       2,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.payload())
		})
	}
}

func TestCoordinatesRequiresBody(t *testing.T) {
	c := newTestClient(t, &stubTransport{post: func(_ int, _ string, _ map[string]any, _ any) error {
		t.Fatal("transport must not be called")
		return nil
	}})

	_, err := c.Coordinates.CreateTask(context.Background(), CoordinatesRequest{})
	require.Error(t, err)
}

func TestCoordinatesEndToEnd(t *testing.T) {
	tr := &stubTransport{}
	tr.post = func(_ int, path string, body map[string]any, out any) error {
		switch path {
		case "/createTask":
			task := body["task"].(map[string]any)
			require.Equal(t, TaskTypeCoordinates, task["type"])
			require.Equal(t, "aGVsbG8=", task["body"])
			require.Equal(t, 1, task["minClicks"])
			_, hasMax := task["maxClicks"]
			require.False(t, hasMax, "unset optionals must be omitted")
			return respond(out, `{"errorId": 0, "taskId": 42, "status": "processing"}`)
		default:
			require.Equal(t, "/getTaskResult", path)
			require.Equal(t, int64(42), body["taskId"])
			if len(tr.calls) == 2 {
				return respond(out, `{"errorId": 0, "taskId": 42, "status": "processing"}`)
			}
			return respond(out, `{
				"errorId": 0,
				"taskId": 42,
				"status": "ready",
				"solution": {"coordinates": [{"x": 10, "y": 20}]}
			}`)
		}
	}
	c := newTestClient(t, tr)

	res, err := c.Coordinates.CreateTask(context.Background(), CoordinatesRequest{
		Body:      "aGVsbG8=",
		MinClicks: intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.TaskID)
	assert.True(t, res.IsReady())
	require.NotNil(t, res.Solution)
	assert.Equal(t, []Coordinate{{X: 10, Y: 20}}, res.Solution.Coordinates)
}
