package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasktrack/internal/delivery/context"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTask stores a task created by creatorID.
func (srv *taskService) CreateTask(ctx context.Context, creatorID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}

	task := &entity.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      input.Status,
		CreatedBy:   creatorID,
	}
	task.ApplyDefaults()

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.String("taskID", task.ID.String()))

	return task, nil
}

// ListTasks returns every task, newest first.
func (srv *taskService) ListTasks(ctx context.Context) ([]*entity.Task, error) {
	tasks, err := srv.taskRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

func (srv *taskService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, domainerrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find task")
	}

	return task, nil
}

// UpdateTask applies a partial update.
func (srv *taskService) UpdateTask(ctx context.Context, id uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("nothing to update")
	}

	task, err := srv.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return task, nil
}

func (srv *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	err := srv.taskRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return domainerrors.ErrTaskNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete task")
	}

	return nil
}

func validateTask(task *entity.Task) error {
	if task.Title == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if !task.Priority.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("priority must be one of: Low, Medium, High")
	}
	if !task.Status.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("status must be one of: Pending, In Progress, Completed")
	}

	return nil
}
