package domain

import (
	"strings"
	"time"
)

// Priority is the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "p1"
	PriorityMedium Priority = "p2"
	PriorityLow    Priority = "p3"
)

// DefaultPriority is applied when a create request omits the field. Client and
// store agree on p2; see DESIGN.md for how the historical p1/p2 split was
// resolved.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the three enumerated levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents one to-do item. ID is assigned by the server at creation
// time and never changes; CreatedAt/UpdatedAt are store-managed.
type Task struct {
	ID          int64     `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	IsCompleted bool      `json:"isCompleted" bson:"isCompleted"`
	Priority    Priority  `json:"priority" bson:"priority"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TaskPatch carries the optional fields of a partial update. Nil means the
// field keeps its current value.
type TaskPatch struct {
	Title       *string
	IsCompleted *bool
	Priority    *Priority
}

// Apply overlays the patch onto t, trimming the title like the store schema
// does.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// Normalize trims the title and fills defaulted fields on a new task.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
}

// Validate checks the schema constraints the store enforces on every write.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if !t.Priority.Valid() {
		return NewError(ErrCodeInvalid, "priority must be one of p1, p2, p3")
	}
	return nil
}
