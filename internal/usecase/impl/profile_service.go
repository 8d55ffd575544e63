package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasktrack/internal/delivery/context"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves the user's profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return user.Sanitized(), nil
}

// UpdateProfile changes name and/or country.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if input == nil || (input.Name == nil && input.Country == nil) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("nothing to update")
	}

	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
		}
		user.Name = name
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		if country == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("country must not be empty")
		}
		user.Country = country
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user.Sanitized(), nil
}

// ChangePassword verifies the current password before storing a new hash.
func (srv *profileService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed
	}
	if err := validateInput(input); err != nil {
		return err
	}

	user, err := srv.findUser(ctx, srv.userRepo, userID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("current password does not match")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hash

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.String("userID", userID.String()))

	return nil
}

// DeleteAccount removes the user's tasks and the user in one transaction.
func (srv *profileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	var removed int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users := repoFactory.UserRepo()
		if _, err := srv.findUser(ctx, users, userID); err != nil {
			return err
		}

		n, err := repoFactory.TaskRepo().DeleteByCreator(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to delete tasks")
		}
		removed = n

		if err := users.Delete(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.String("userID", userID.String()), slog.Int64("tasksRemoved", removed))

	return nil
}

func (srv *profileService) findUser(ctx context.Context, users repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
