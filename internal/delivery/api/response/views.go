package response

import (
	"time"

	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// User is the public view of an identity. It has no password field.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUser(u *entity.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Country:   u.Country,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Task is the JSON view of a task.
type Task struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Priority    entity.Priority `json:"priority"`
	Status      entity.Status   `json:"status"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewTask(t *entity.Task) *Task {
	return &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTasks(tasks []*entity.Task) []*Task {
	views := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTask(t))
	}

	return views
}
