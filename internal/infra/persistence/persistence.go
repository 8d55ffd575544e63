// Package persistence selects the storage backend configured in storage.driver.
package persistence

import (
	"log/slog"

	"tasktrack/config"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/errors"
	"tasktrack/internal/infra/persistence/memory"
	"tasktrack/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of repositories provided to the usecases.
type Repositories struct {
	fx.Out

	Users     repository.UserRepository
	Tasks     repository.TaskRepository
	TxManager repository.TransactionManager
}

// New opens the configured backend.
func New(params Params) (Repositories, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()

		return Repositories{
			Users:     store.UserRepo(),
			Tasks:     store.TaskRepo(),
			TxManager: store.TransactionManager(),
		}, nil
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Users:     postgres.NewUserRepository(db),
			Tasks:     postgres.NewTaskRepository(db),
			TxManager: postgres.NewTransactionManager(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unknown storage driver %q", params.Config.Storage.Driver)
	}
}
