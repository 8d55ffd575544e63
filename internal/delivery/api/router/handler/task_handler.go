package handler

import (
	"log/slog"
	"strings"
	"time"

	"tasktrack/internal/delivery/api/response"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dateLayout = "2006-01-02"

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler serves /api/tasks.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// TaskRequest is the body of create and update calls. Absent fields are
// left alone on update; an empty dueDate clears it.
type TaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Status      *string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	req, err := bindTaskRequest(c)
	if err != nil {
		return err
	}

	input := &usecase.CreateTaskInput{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Priority:    entity.Priority(deref(req.Priority)),
		Status:      entity.Status(deref(req.Status)),
	}
	if input.DueDate, err = parseDueDate(req.DueDate); err != nil {
		return err
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, echo.Map{"task": response.NewTask(task)})
}

// ListTasks returns every task, newest first.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskUC.ListTasks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"tasks": response.NewTasks(tasks)})
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"task": response.NewTask(task)})
}

func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	req, err := bindTaskRequest(c)
	if err != nil {
		return err
	}

	input := &usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		input.Priority = &p
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		input.Status = &s
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) == "" {
		input.ClearDueDate = true
	} else if input.DueDate, err = parseDueDate(req.DueDate); err != nil {
		return err
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"task": response.NewTask(task)})
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"message": "Task deleted"})
}

func bindTaskRequest(c echo.Context) (*TaskRequest, error) {
	var req TaskRequest
	if err := bindBody(c, &req); err != nil {
		return nil, err
	}
	if err := c.Validate(&req); err != nil {
		return nil, errors.WithStack(err)
	}

	return &req, nil
}

func taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidID.WithDetails("task id must be a UUID")
	}

	return id, nil
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp. Dates are
// taken as midnight UTC.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	value := strings.TrimSpace(*raw)
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()

			return &t, nil
		}
	}

	return nil, domainerrors.ErrValidationFailed.WithDetails("dueDate must be YYYY-MM-DD or RFC 3339")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
