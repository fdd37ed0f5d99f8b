package repository

import (
	"context"

	"github.com/taskpad/taskpad/domain"
)

// TaskRepository abstracts the document store holding the task collection.
// List returns tasks newest-first by creation time.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
