// Package state holds the client-side task list state and its pure reducer.
// All mutation flows through Reduce; the surrounding UI only dispatches
// actions carrying the server's authoritative responses.
package state

import "github.com/taskpad/taskpad/domain"

// TodoState is the in-memory client state. It is rebuilt from scratch on each
// program start by fetching all tasks.
type TodoState struct {
	Todos     []domain.Task
	IsLoading bool
	Error     string // empty means no error
}

// Action is the closed set of state transitions.
type Action interface{ isAction() }

// SetLoading toggles the loading flag and nothing else.
type SetLoading struct{ Loading bool }

// SetError records a normalized error message (empty clears it) and forces
// loading off.
type SetError struct{ Message string }

// SetTasks replaces the task list wholesale.
type SetTasks struct{ Tasks []domain.Task }

// AddTask appends the server-created task.
type AddTask struct{ Task domain.Task }

// UpdateTask replaces the entry with a matching id; no-op when absent.
type UpdateTask struct{ Task domain.Task }

// ToggleTask replaces the entry with a matching id; the payload already
// carries the flipped completion state from the server.
type ToggleTask struct{ Task domain.Task }

// DeleteTask removes the entry with the given id.
type DeleteTask struct{ ID int64 }

func (SetLoading) isAction() {}
func (SetError) isAction()   {}
func (SetTasks) isAction()   {}
func (AddTask) isAction()    {}
func (UpdateTask) isAction() {}
func (ToggleTask) isAction() {}
func (DeleteTask) isAction() {}

// Reduce returns the next state. The input is never mutated: every action
// that changes the list allocates a fresh slice, and an unrecognized (nil)
// action returns the input unchanged.
func Reduce(s TodoState, a Action) TodoState {
	switch a := a.(type) {
	case SetLoading:
		s.IsLoading = a.Loading
		return s
	case SetError:
		s.Error = a.Message
		s.IsLoading = false
		return s
	case SetTasks:
		s.Todos = append([]domain.Task(nil), a.Tasks...)
		s.Error = ""
		return s
	case AddTask:
		todos := make([]domain.Task, 0, len(s.Todos)+1)
		todos = append(todos, s.Todos...)
		s.Todos = append(todos, a.Task)
		s.Error = ""
		return s
	case UpdateTask:
		s.Todos = replaceByID(s.Todos, a.Task)
		s.Error = ""
		return s
	case ToggleTask:
		s.Todos = replaceByID(s.Todos, a.Task)
		s.Error = ""
		return s
	case DeleteTask:
		todos := make([]domain.Task, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID != a.ID {
				todos = append(todos, t)
			}
		}
		s.Todos = todos
		s.Error = ""
		return s
	}
	return s
}

func replaceByID(todos []domain.Task, task domain.Task) []domain.Task {
	next := make([]domain.Task, len(todos))
	for i, t := range todos {
		if t.ID == task.ID {
			next[i] = task
		} else {
			next[i] = t
		}
	}
	return next
}
