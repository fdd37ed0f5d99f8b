package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/repository"
)

// createRetries bounds the id bump loop when two creates land in the same
// millisecond.
const createRetries = 5

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// ListTasks returns every task, newest first.
func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

// CreateTask assigns a wall-clock millisecond id, applies defaults and
// persists the task. A duplicate-id collision bumps the id and retries.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.ID = uc.now().UnixMilli()
	for attempt := 0; ; attempt++ {
		created, err := uc.tasks.Create(ctx, task)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrDuplicateTaskID) || attempt >= createRetries {
			return nil, err
		}
		uc.logger.Debug("task id collision, bumping", zap.Int64("id", task.ID))
		task.ID++
	}
}

// UpdateTask overlays the patch onto the stored task and persists the result.
func (uc *UseCase) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleTask flips the completion flag and persists it.
func (uc *UseCase) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task permanently.
func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	return uc.tasks.Delete(ctx, id)
}
