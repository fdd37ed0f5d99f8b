package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskpad/taskpad/domain"
)

// fakeRepo is an in-memory TaskRepository used to pin down use case behavior.
type fakeRepo struct {
	tasks      map[int64]domain.Task
	createErr  error
	collisions int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[int64]domain.Task)}
}

func (r *fakeRepo) List(ctx context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *fakeRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.collisions > 0 {
		r.collisions--
		return nil, domain.ErrDuplicateTaskID
	}
	if _, exists := r.tasks[task.ID]; exists {
		return nil, domain.ErrDuplicateTaskID
	}
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeRepo) Update(ctx context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func fixedNow(uc *UseCase, at time.Time) {
	uc.now = func() time.Time { return at }
}

func TestCreateAssignsMillisecondID(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(uc, at)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID != at.UnixMilli() {
		t.Errorf("expected id %d, got %d", at.UnixMilli(), created.ID)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "  Buy milk  "})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.Title != "Buy milk" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if created.IsCompleted {
		t.Error("isCompleted must default to false")
	}
	if created.Priority != domain.PriorityMedium {
		t.Errorf("priority must default to p2, got %s", created.Priority)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	uc := New(newFakeRepo(), nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: "   "})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID error, got %v", err)
	}
}

func TestCreateRejectsUnknownPriority(t *testing.T) {
	uc := New(newFakeRepo(), nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: "x", Priority: "p9"})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID error, got %v", err)
	}
}

func TestCreateBumpsIDOnCollision(t *testing.T) {
	repo := newFakeRepo()
	repo.collisions = 2
	uc := New(repo, nil)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(uc, at)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "same millisecond"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID != at.UnixMilli()+2 {
		t.Errorf("expected bumped id %d, got %d", at.UnixMilli()+2, created.ID)
	}
}

func TestCreateGivesUpAfterRetries(t *testing.T) {
	repo := newFakeRepo()
	repo.collisions = createRetries + 5
	uc := New(repo, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: "stuck"})
	if !errors.Is(err, domain.ErrDuplicateTaskID) {
		t.Fatalf("expected duplicate error after exhausting retries, got %v", err)
	}
}

func TestUpdateOverlaysOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		Title:    "original",
		Priority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	title := "renamed"
	updated, err := uc.UpdateTask(context.Background(), created.ID, domain.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("title not updated: %q", updated.Title)
	}
	if updated.Priority != domain.PriorityHigh {
		t.Errorf("absent priority field must keep its value, got %s", updated.Priority)
	}
	if updated.ID != created.ID {
		t.Error("id must be immutable")
	}
}

func TestUpdateMissingTaskSignalsNotFound(t *testing.T) {
	uc := New(newFakeRepo(), nil)

	title := "x"
	_, err := uc.UpdateTask(context.Background(), 42, domain.TaskPatch{Title: &title})
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestToggleFlipsTwice(t *testing.T) {
	repo := newFakeRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{Title: "flip me"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	once, err := uc.ToggleTask(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !once.IsCompleted {
		t.Error("expected isCompleted=true after first toggle")
	}

	twice, err := uc.ToggleTask(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if twice.IsCompleted {
		t.Error("expected isCompleted=false after second toggle")
	}
}

func TestDeleteMissingTaskSignalsNotFound(t *testing.T) {
	uc := New(newFakeRepo(), nil)

	err := uc.DeleteTask(context.Background(), 7)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
