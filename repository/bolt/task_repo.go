// Package bolt provides an embedded TaskRepository on top of BoltDB. It keeps
// development and tests independent of a running MongoDB instance; documents
// are stored as JSON under big-endian id keys in a single bucket.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/repository"
)

var bucketTasks = []byte("tasks")

// Store wraps the Bolt database and implements repository.TaskRepository.
type Store struct {
	db *bbolt.DB
}

// Open initializes the Bolt file and ensures the task bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTasks)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is open and readable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bbolt.Tx) error { return nil })
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketTasks).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				continue
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "task store unavailable", err)
	}

	// Newest first, ids break creation-time ties.
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task *domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketTasks).Get(taskKey(id))
		if v == nil {
			return domain.ErrTaskNotFound
		}
		var t domain.Task
		if err := json.Unmarshal(v, &t); err != nil {
			return err
		}
		task = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		key := taskKey(task.ID)
		if b.Get(key) != nil {
			return domain.ErrDuplicateTaskID
		}
		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return b.Put(key, payload)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	task.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		key := taskKey(task.ID)
		if b.Get(key) == nil {
			return domain.ErrTaskNotFound
		}
		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return b.Put(key, payload)
	})
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		key := taskKey(id)
		if b.Get(key) == nil {
			return domain.ErrTaskNotFound
		}
		return b.Delete(key)
	})
}

func taskKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

var _ repository.TaskRepository = (*Store)(nil)
