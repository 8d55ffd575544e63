// Package taskform is the single create/edit form for tasks.
package taskform

import (
	"context"
	"strings"
	"time"

	"tasktrack/internal/client/model"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/errors"
)

const DateLayout = "2006-01-02"

type Mode int

const (
	Create Mode = iota
	Edit
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrDueDateRequired = errors.New("due date is required")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD")
	ErrNoChanges       = errors.New("nothing changed")
	ErrMissingInitial  = errors.New("edit mode needs the task being edited")
)

// Values is what the user typed. Empty Priority and Status mean "not chosen".
type Values struct {
	Title       string
	Description string
	DueDate     string
	Priority    entity.Priority
	Status      entity.Status
}

// SubmitFunc sends the payload, usually apiclient.Client.CreateTask or a
// closure over UpdateTask.
type SubmitFunc func(ctx context.Context, payload *model.TaskPayload) (*model.Task, error)

type Form struct {
	Mode     Mode
	Initial  *model.Task
	OnSubmit SubmitFunc
}

// Defaults returns the values the form opens with.
func (f *Form) Defaults() Values {
	if f.Mode == Edit && f.Initial != nil {
		return valuesOf(f.Initial)
	}

	return Values{Priority: entity.DefaultPriority, Status: entity.DefaultStatus}
}

// CanSubmit reports whether the submit button is enabled.
func (f *Form) CanSubmit(v Values) bool {
	return f.check(v) == nil
}

// Submit validates v and hands the resulting payload to OnSubmit.
func (f *Form) Submit(ctx context.Context, v Values) (*model.Task, error) {
	if err := f.check(v); err != nil {
		return nil, err
	}

	var payload *model.TaskPayload
	switch f.Mode {
	case Edit:
		if f.Initial == nil {
			return nil, ErrMissingInitial
		}
		payload = diff(valuesOf(f.Initial), normalize(v))
		if payload == nil {
			return nil, ErrNoChanges
		}
	default:
		payload = createPayload(normalize(v))
	}

	task, err := f.OnSubmit(ctx, payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return task, nil
}

func (f *Form) check(v Values) error {
	if strings.TrimSpace(v.Title) == "" {
		return ErrTitleRequired
	}
	due := strings.TrimSpace(v.DueDate)
	if due == "" {
		return ErrDueDateRequired
	}
	if _, err := time.Parse(DateLayout, due); err != nil {
		return ErrInvalidDueDate
	}
	if v.Priority != "" && !v.Priority.IsValid() {
		return errors.Errorf("unknown priority %q", v.Priority)
	}
	if v.Status != "" && !v.Status.IsValid() {
		return errors.Errorf("unknown status %q", v.Status)
	}

	return nil
}

func normalize(v Values) Values {
	v.Title = strings.TrimSpace(v.Title)
	v.DueDate = strings.TrimSpace(v.DueDate)
	if v.Priority == "" {
		v.Priority = entity.DefaultPriority
	}
	if v.Status == "" {
		v.Status = entity.DefaultStatus
	}

	return v
}

func valuesOf(t *model.Task) Values {
	v := Values{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		v.DueDate = t.DueDate.UTC().Format(DateLayout)
	}

	return v
}

func createPayload(v Values) *model.TaskPayload {
	priority, status := string(v.Priority), string(v.Status)

	return &model.TaskPayload{
		Title:       &v.Title,
		Description: &v.Description,
		DueDate:     &v.DueDate,
		Priority:    &priority,
		Status:      &status,
	}
}

// diff returns only the fields that differ from before, or nil.
func diff(before, after Values) *model.TaskPayload {
	payload := &model.TaskPayload{}
	changed := false
	set := func(dst **string, old, cur string) {
		if old != cur {
			*dst = &cur
			changed = true
		}
	}

	set(&payload.Title, before.Title, after.Title)
	set(&payload.Description, before.Description, after.Description)
	set(&payload.DueDate, before.DueDate, after.DueDate)
	set(&payload.Priority, string(before.Priority), string(after.Priority))
	set(&payload.Status, string(before.Status), string(after.Status))

	if !changed {
		return nil
	}

	return payload
}
