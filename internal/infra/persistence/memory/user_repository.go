package memory

import (
	"context"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	acc accessor
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := r.acc.view(func(st *state) error {
		user, ok := st.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(user)

		return nil
	})

	return found, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := r.acc.view(func(st *state) error {
		id, ok := st.emails[entity.NormalizeEmail(email)]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(st.users[id])

		return nil
	})

	return found, err
}

// Create checks and claims the email under the write lock, so exactly one of
// several concurrent registrations for the same address succeeds.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.acc.update(func(st *state) error {
		email := entity.NormalizeEmail(user.Email)
		if _, taken := st.emails[email]; taken {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists")
		}

		if user.ID == uuid.Nil {
			user.ID = uuid.Must(uuid.NewV7())
		}
		now := r.acc.now()
		user.Email = email
		user.CreatedAt = now
		user.UpdatedAt = now

		st.users[user.ID] = cloneUser(user)
		st.emails[email] = user.ID

		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.acc.update(func(st *state) error {
		current, ok := st.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}

		email := entity.NormalizeEmail(user.Email)
		if owner, taken := st.emails[email]; taken && owner != user.ID {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists")
		}

		user.Email = email
		user.CreatedAt = current.CreatedAt
		user.UpdatedAt = r.acc.now()

		delete(st.emails, current.Email)
		st.emails[email] = user.ID
		st.users[user.ID] = cloneUser(user)

		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.acc.update(func(st *state) error {
		current, ok := st.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}

		delete(st.emails, current.Email)
		delete(st.users, id)

		return nil
	})
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user

	return &clone
}
