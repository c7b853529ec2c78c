package twocaptcha

import "encoding/json"

// Task types understood by the service. Each solver submits exactly one.
const (
	TaskTypeCoordinates = "CoordinatesTask"
	TaskTypeTurnstile   = "TurnstileTaskProxyless"
)

// Task status values. The service may introduce new ones; unknown values
// leave a task in neither the ready nor the processing state.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
)

// Task is the server-side state of one solve request at a point in time.
// A fresh value is decoded from every /createTask and /getTaskResult
// response; tasks are never mutated in place.
type Task struct {
	TaskID           int64           `json:"taskId"`
	ErrorID          int             `json:"errorId"`
	ErrorCode        string          `json:"errorCode"`
	ErrorDescription string          `json:"errorDescription"`
	Status           string          `json:"status"`
	Solution         json.RawMessage `json:"solution"`
}

// IsReady reports whether the task completed successfully and carries a solution.
func (t *Task) IsReady() bool {
	return t.ErrorID == 0 && t.Status == StatusReady
}

// IsProcessing reports whether the task is still being solved.
func (t *Task) IsProcessing() bool {
	return t.ErrorID == 0 && t.Status == StatusProcessing
}

// IsError reports whether the service rejected or failed the task.
func (t *Task) IsError() bool {
	return t.ErrorID != 0
}
