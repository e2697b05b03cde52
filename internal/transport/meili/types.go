package meili

import "github.com/chippyinn/concierge/internal/domain"

// taskInfo is the engine's acknowledgement of an asynchronous operation.
type taskInfo struct {
	TaskUID int64  `json:"taskUid"`
	Status  string `json:"status"`
	Type    string `json:"type"`
}

// Task is the polled state of an asynchronous engine operation.
type Task struct {
	UID    int64      `json:"uid"`
	Status string     `json:"status"`
	Type   string     `json:"type"`
	Error  *taskError `json:"error"`
}

// taskError is the error payload of a failed task.
type taskError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

// Terminal task states.
const (
	taskSucceeded = "succeeded"
	taskFailed    = "failed"
	taskCanceled  = "canceled"
)

// searchRequest is the engine search call body.
type searchRequest struct {
	Query  string   `json:"q"`
	Filter string   `json:"filter,omitempty"`
	Limit  int      `json:"limit"`
	Sort   []string `json:"sort,omitempty"`
}

// searchResponse is the engine search call result.
type searchResponse struct {
	Hits []domain.Room `json:"hits"`
}

// healthResponse is the engine health payload.
type healthResponse struct {
	Status string `json:"status"`
}

// indexRequest is the index creation body.
type indexRequest struct {
	UID        string `json:"uid"`
	PrimaryKey string `json:"primaryKey,omitempty"`
}
