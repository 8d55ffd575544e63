// Package memory is an in-process implementation of the repositories. It backs
// the "memory" storage driver and the handler and usecase tests.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

type state struct {
	users  map[uuid.UUID]*entity.User
	emails map[string]uuid.UUID
	tasks  map[uuid.UUID]*entity.Task
}

func newState() *state {
	return &state{
		users:  make(map[uuid.UUID]*entity.User),
		emails: make(map[string]uuid.UUID),
		tasks:  make(map[uuid.UUID]*entity.Task),
	}
}

// clone copies the indexes. Stored entities are never mutated in place, so
// sharing the pointers is safe.
func (st *state) clone() *state {
	out := &state{
		users:  make(map[uuid.UUID]*entity.User, len(st.users)),
		emails: make(map[string]uuid.UUID, len(st.emails)),
		tasks:  make(map[uuid.UUID]*entity.Task, len(st.tasks)),
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.emails {
		out.emails[k] = v
	}
	for k, v := range st.tasks {
		out.tasks[k] = v
	}

	return out
}

// accessor hides whether repositories run against the shared store or a
// transaction snapshot.
type accessor interface {
	view(fn func(st *state) error) error
	update(fn func(st *state) error) error
	now() time.Time
}

// Store holds all records behind one RWMutex.
type Store struct {
	mu    sync.RWMutex
	st    *state
	clock func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.clock = now
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{st: newState(), clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) view(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.st)
}

func (s *Store) update(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.st)
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// UserRepo returns the user repository over the shared store.
func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{acc: s}
}

// TaskRepo returns the task repository over the shared store.
func (s *Store) TaskRepo() repository.TaskRepository {
	return &taskRepository{acc: s}
}

// TransactionManager returns a manager whose transactions are serialized
// against every other store operation.
func (s *Store) TransactionManager() repository.TransactionManager {
	return &txManager{store: s}
}

type txManager struct {
	store *Store
}

type txAccessor struct {
	st    *state
	clock func() time.Time
}

func (a *txAccessor) view(fn func(st *state) error) error   { return fn(a.st) }
func (a *txAccessor) update(fn func(st *state) error) error { return fn(a.st) }
func (a *txAccessor) now() time.Time                        { return a.clock().UTC() }

type txFactory struct {
	acc *txAccessor
}

func (f *txFactory) UserRepo() repository.UserRepository { return &userRepository{acc: f.acc} }
func (f *txFactory) TaskRepo() repository.TaskRepository { return &taskRepository{acc: f.acc} }

// Execute runs fn against a snapshot and publishes it only when fn succeeds.
// The store lock is held for the whole call, so fn must only use the
// repositories handed to it.
func (m *txManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	acc := &txAccessor{st: m.store.st.clone(), clock: m.store.clock}
	if err := fn(&txFactory{acc: acc}); err != nil {
		return err
	}

	m.store.st = acc.st

	return nil
}

// sortNewestFirst orders by creation time, then by id; ids are UUIDv7 so the
// tie-break follows insertion order.
func sortNewestFirst(tasks []*entity.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}

		return bytes.Compare(tasks[i].ID[:], tasks[j].ID[:]) > 0
	})
}
