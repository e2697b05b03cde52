// Package meili is a typed HTTP client for the search engine (Meilisearch
// wire protocol): index management, settings pushes, asynchronous task
// polling, and filtered search.
package meili

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chippyinn/concierge/internal/domain"
)

// Client talks to a search engine instance.
type Client struct {
	baseURL      string
	apiKey       string
	httpc        *http.Client
	pollInterval time.Duration
}

// Config holds the engine connection settings.
type Config struct {
	Host         string
	APIKey       string
	Timeout      time.Duration
	PollInterval time.Duration
}

// NewClient creates an engine client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 250 * time.Millisecond
	}
	return &Client{
		baseURL:      cfg.Host,
		apiKey:       cfg.APIKey,
		httpc:        &http.Client{Timeout: timeout},
		pollInterval: poll,
	}
}

// Health reports whether the engine is available.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "available" {
		return fmt.Errorf("%w: engine status %q", domain.ErrEngineUnavailable, resp.Status)
	}
	return nil
}

// WaitForReady polls the engine health endpoint until it responds or the
// timeout elapses.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := c.Health(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("engine not ready after %s: %w", timeout, err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for engine: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// HasIndex reports whether the index exists.
func (c *Client) HasIndex(ctx context.Context, uid string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/indexes/"+uid, nil, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// CreateIndex creates the index and returns the enqueued task UID.
func (c *Client) CreateIndex(ctx context.Context, uid, primaryKey string) (int64, error) {
	var info taskInfo
	body := indexRequest{UID: uid, PrimaryKey: primaryKey}
	if err := c.do(ctx, http.MethodPost, "/indexes", body, &info); err != nil {
		return 0, err
	}
	return info.TaskUID, nil
}

// AddDocuments loads documents into the index and returns the task UID.
func (c *Client) AddDocuments(ctx context.Context, uid string, docs []domain.Room) (int64, error) {
	var info taskInfo
	if err := c.do(ctx, http.MethodPost, "/indexes/"+uid+"/documents", docs, &info); err != nil {
		return 0, err
	}
	return info.TaskUID, nil
}

// UpdateFilterableAttributes replaces the index's filterable attribute set.
func (c *Client) UpdateFilterableAttributes(ctx context.Context, uid string, attrs []string) (int64, error) {
	var info taskInfo
	path := "/indexes/" + uid + "/settings/filterable-attributes"
	if err := c.do(ctx, http.MethodPut, path, attrs, &info); err != nil {
		return 0, err
	}
	return info.TaskUID, nil
}

// UpdateSortableAttributes replaces the index's sortable attribute set.
func (c *Client) UpdateSortableAttributes(ctx context.Context, uid string, attrs []string) (int64, error) {
	var info taskInfo
	path := "/indexes/" + uid + "/settings/sortable-attributes"
	if err := c.do(ctx, http.MethodPut, path, attrs, &info); err != nil {
		return 0, err
	}
	return info.TaskUID, nil
}

// Search runs a filtered, sorted search against the index. A schema mismatch
// is returned as *domain.SchemaMismatchError.
func (c *Client) Search(ctx context.Context, uid, query, filter string, limit int, sort []string) ([]domain.Room, error) {
	req := searchRequest{Query: query, Filter: filter, Limit: limit, Sort: sort}
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/indexes/"+uid+"/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

// GetTask fetches the state of an asynchronous engine task.
func (c *Client) GetTask(ctx context.Context, taskUID int64) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", taskUID), nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// WaitForTask polls a task until it reaches a terminal state or the timeout
// elapses. A failed task carries the engine's error message.
func (c *Client) WaitForTask(ctx context.Context, taskUID int64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		task, err := c.GetTask(ctx, taskUID)
		if err != nil {
			return fmt.Errorf("poll task %d: %w", taskUID, err)
		}
		switch task.Status {
		case taskSucceeded:
			return nil
		case taskFailed, taskCanceled:
			msg := task.Status
			if task.Error != nil {
				msg = task.Error.Message
			}
			return fmt.Errorf("%w: task %d: %s", domain.ErrTaskFailed, taskUID, msg)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: task %d still %s after %s", domain.ErrTaskTimeout, taskUID, task.Status, timeout)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for task %d: %w", taskUID, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// do issues one request and decodes the response into out (if non-nil).
// Non-2xx responses are decoded as APIError and mapped to domain errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if readErr == nil {
			_ = json.Unmarshal(data, apiErr)
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return mapAPIError(apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
