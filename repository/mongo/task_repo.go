package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/repository"
)

type taskRepository struct {
	coll *mongodrv.Collection
}

// NewTaskRepository returns a MongoDB-backed implementation of TaskRepository.
// The collection is expected to carry a unique index on the "id" field (see
// infrastructure/mongodb).
func NewTaskRepository(coll *mongodrv.Collection) repository.TaskRepository {
	return &taskRepository{coll: coll}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "task store unavailable", err)
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "task store unavailable", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTaskID
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	task.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "id", Value: task.ID}}, task)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
