package transport

import "github.com/taskpad/taskpad/domain"

// CreateTaskRequest is the POST /api/tasks body. Title is required; the other
// fields default server-side.
type CreateTaskRequest struct {
	Title       string           `json:"title"`
	IsCompleted *bool            `json:"isCompleted"`
	Priority    *domain.Priority `json:"priority"`
}

// UpdateTaskRequest is the PUT /api/tasks/{id} body. Every field is optional;
// absent fields keep their stored values.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	IsCompleted *bool            `json:"isCompleted"`
	Priority    *domain.Priority `json:"priority"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		IsCompleted: r.IsCompleted,
		Priority:    r.Priority,
	}
}
