package memory

import (
	"context"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

type taskRepository struct {
	acc accessor
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.acc.update(func(st *state) error {
		if task.ID == uuid.Nil {
			task.ID = uuid.Must(uuid.NewV7())
		}
		now := r.acc.now()
		task.CreatedAt = now
		task.UpdatedAt = now

		st.tasks[task.ID] = cloneTask(task)

		return nil
	})
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var found *entity.Task
	err := r.acc.view(func(st *state) error {
		task, ok := st.tasks[id]
		if !ok {
			return repository.ErrTaskNotFound
		}
		found = cloneTask(task)

		return nil
	})

	return found, err
}

func (r *taskRepository) List(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	err := r.acc.view(func(st *state) error {
		tasks = make([]*entity.Task, 0, len(st.tasks))
		for _, task := range st.tasks {
			tasks = append(tasks, cloneTask(task))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(tasks)

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	return r.acc.update(func(st *state) error {
		current, ok := st.tasks[task.ID]
		if !ok {
			return repository.ErrTaskNotFound
		}

		task.CreatedAt = current.CreatedAt
		task.CreatedBy = current.CreatedBy
		task.UpdatedAt = r.acc.now()
		st.tasks[task.ID] = cloneTask(task)

		return nil
	})
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.acc.update(func(st *state) error {
		if _, ok := st.tasks[id]; !ok {
			return repository.ErrTaskNotFound
		}
		delete(st.tasks, id)

		return nil
	})
}

func (r *taskRepository) DeleteByCreator(ctx context.Context, userID uuid.UUID) (int64, error) {
	var removed int64
	err := r.acc.update(func(st *state) error {
		for id, task := range st.tasks {
			if task.CreatedBy == userID {
				delete(st.tasks, id)
				removed++
			}
		}

		return nil
	})

	return removed, err
}

func cloneTask(task *entity.Task) *entity.Task {
	clone := *task
	if task.DueDate != nil {
		due := *task.DueDate
		clone.DueDate = &due
	}

	return &clone
}
