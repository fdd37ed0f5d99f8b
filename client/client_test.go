package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskpad/taskpad/domain"
)

func TestListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Task{{ID: 1, Title: "Buy milk"}})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestCreateTaskSendsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body["title"] != "Buy milk" {
			t.Errorf("unexpected title %v", body["title"])
		}
		if body["isCompleted"] != false {
			t.Errorf("expected isCompleted=false, got %v", body["isCompleted"])
		}
		if body["priority"] != "p2" {
			t.Errorf("expected priority p2, got %v", body["priority"])
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Task{ID: 99, Title: "Buy milk", Priority: domain.PriorityMedium})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	task, err := c.CreateTask(context.Background(), "Buy milk", domain.DefaultPriority)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != 99 {
		t.Errorf("client must adopt the server-assigned id, got %d", task.ID)
	}
}

func TestToggleTaskPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/tasks/7/toggle" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.Task{ID: 7, IsCompleted: true})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	task, err := c.ToggleTask(context.Background(), 7)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !task.IsCompleted {
		t.Error("expected the server's flipped state")
	}
}

func TestServerMessageSurfacesInAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task not found"})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	err := c.DeleteTask(context.Background(), 404)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "Task not found" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}

func TestNormalizePrefersServerMessage(t *testing.T) {
	err := &APIError{Status: 400, Message: "title is required"}
	if got := Normalize(err); got != "title is required" {
		t.Errorf("expected server message, got %q", got)
	}
}

func TestNormalizeFallsBackToTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1/api") // nothing listens here
	_, err := c.ListTasks(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if got := Normalize(err); got == "" || got == genericErrorMessage {
		t.Errorf("expected the transport error text, got %q", got)
	}
}

func TestNormalizeGenericFallback(t *testing.T) {
	if got := Normalize(nil); got != genericErrorMessage {
		t.Errorf("expected generic fallback, got %q", got)
	}
}

func TestNormalizeEmptyServerMessageUsesStatusText(t *testing.T) {
	err := &APIError{Status: 500}
	if got := Normalize(err); got != "request failed with status 500" {
		t.Errorf("unexpected normalization %q", got)
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("APP_ENV", "")
	if got := BaseURLFromEnv(); got != "http://localhost:5000/api" {
		t.Errorf("expected dev default, got %q", got)
	}

	t.Setenv("APP_ENV", "production")
	if got := BaseURLFromEnv(); got != productionBaseURL {
		t.Errorf("expected production base, got %q", got)
	}

	t.Setenv("API_BASE_URL", "http://example.test/api")
	if got := BaseURLFromEnv(); got != "http://example.test/api" {
		t.Errorf("explicit API_BASE_URL must win, got %q", got)
	}
}
