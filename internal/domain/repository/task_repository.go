package repository

import (
	"context"
	"errors"

	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// List returns every task ordered newest-created first.
	List(ctx context.Context) ([]*entity.Task, error)

	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCreator removes every task created by the given user and
	// returns how many were removed.
	DeleteByCreator(ctx context.Context, userID uuid.UUID) (int64, error)
}
