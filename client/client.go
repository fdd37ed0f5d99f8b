// Package client is the typed HTTP client for the task API. It mirrors the
// five server operations and normalizes every failure into a single
// human-readable message for the UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/taskpad/taskpad/domain"
)

const productionBaseURL = "https://taskpad-api.vercel.app/api"

// genericErrorMessage is the last rung of the normalization ladder.
const genericErrorMessage = "An unexpected error occurred"

// APIError carries the server-supplied message of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the task API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL (".../api", no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURLFromEnv picks the API base: API_BASE_URL wins, otherwise the
// production URL when APP_ENV=production, otherwise the local dev server.
func BaseURLFromEnv() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	if os.Getenv("APP_ENV") == "production" {
		return productionBaseURL
	}
	return "http://localhost:5000/api"
}

// ListTasks fetches every task, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask submits a new task and returns the server's canonical version,
// including the server-assigned id.
func (c *Client) CreateTask(ctx context.Context, title string, priority domain.Priority) (*domain.Task, error) {
	body := map[string]interface{}{
		"title":       title,
		"isCompleted": false,
	}
	if priority != "" {
		body["priority"] = priority
	}
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	body := map[string]interface{}{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.IsCompleted != nil {
		body["isCompleted"] = *patch.IsCompleted
	}
	if patch.Priority != nil {
		body["priority"] = *patch.Priority
	}
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips completion server-side and returns the flipped task.
func (c *Client) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/toggle", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes the task permanently.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Normalize reduces any failure to a displayable string: the server's message
// field when present, then the transport error text, then a generic fallback.
func Normalize(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return genericErrorMessage
}
