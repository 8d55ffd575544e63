package usecase

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput defines a new task. Empty priority and status take the defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    entity.Priority
	Status      entity.Status
}

// UpdateTaskInput is a partial update; nil fields are kept. ClearDueDate
// removes the due date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *entity.Priority
	Status       *entity.Status
}

// TaskUsecase is the task board.
type TaskUsecase interface {
	CreateTask(ctx context.Context, creatorID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)

	// ListTasks returns every task, newest-created first.
	ListTasks(ctx context.Context) ([]*entity.Task, error)

	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}
