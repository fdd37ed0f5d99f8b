package transport

import "fmt"

// Message is the body of every non-entity response: delete confirmations and
// all error payloads.
type Message struct {
	Message string `json:"message"`
}

// NewMessage formats a message payload.
func NewMessage(format string, args ...interface{}) Message {
	if len(args) == 0 {
		return Message{Message: format}
	}
	return Message{Message: fmt.Sprintf(format, args...)}
}

// Index documents the API surface; served on GET /.
type Index struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewIndex returns the root route payload.
func NewIndex() Index {
	return Index{
		Message: "Todo List API is running!",
		Endpoints: map[string]string{
			"getTasks":   "GET /api/tasks",
			"createTask": "POST /api/tasks",
			"updateTask": "PUT /api/tasks/:id",
			"toggleTask": "PATCH /api/tasks/:id/toggle",
			"deleteTask": "DELETE /api/tasks/:id",
		},
	}
}
