package impl

import (
	"context"
	"testing"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	mockRepo "tasktrack/internal/mocks/repository"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixtures struct {
	serviceFixtures
	profile usecase.ProfileUsecase
	tasks   usecase.TaskUsecase
	user    *entity.User
	token   string
}

func newProfileFixtures(t *testing.T) profileFixtures {
	fx := newServiceFixtures(t)

	out, err := fx.auth.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	return profileFixtures{
		serviceFixtures: fx,
		profile: NewProfileService(ProfileServiceParams{
			TxManager: fx.store.TransactionManager(),
			UserRepo:  fx.store.UserRepo(),
			Hasher:    fx.hasher,
			Logger:    newDiscardLogger(),
		}),
		tasks: NewTaskService(TaskServiceParams{
			TaskRepo: fx.store.TaskRepo(),
			Logger:   newDiscardLogger(),
		}),
		user:  out.User,
		token: out.Credential.Token,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestProfileService_GetProfile(t *testing.T) {
	fx := newProfileFixtures(t)
	ctx := context.Background()

	user, err := fx.profile.GetProfile(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = fx.profile.GetProfile(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_UpdateProfile(t *testing.T) {
	fx := newProfileFixtures(t)
	ctx := context.Background()

	updated, err := fx.profile.UpdateProfile(ctx, fx.user.ID, &usecase.UpdateProfileInput{Country: ptr(" DE ")})
	require.NoError(t, err)
	assert.Equal(t, "DE", updated.Country)
	assert.Equal(t, "A", updated.Name)
	assert.Empty(t, updated.PasswordHash)

	_, err = fx.profile.UpdateProfile(ctx, fx.user.ID, &usecase.UpdateProfileInput{Name: ptr("  ")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.profile.UpdateProfile(ctx, fx.user.ID, &usecase.UpdateProfileInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.profile.UpdateProfile(ctx, uuid.New(), &usecase.UpdateProfileInput{Name: ptr("B")})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_ChangePassword(t *testing.T) {
	fx := newProfileFixtures(t)
	ctx := context.Background()

	err := fx.profile.ChangePassword(ctx, fx.user.ID, &usecase.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "q"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = fx.profile.ChangePassword(ctx, fx.user.ID, &usecase.ChangePasswordInput{CurrentPassword: "p"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	require.NoError(t, fx.profile.ChangePassword(ctx, fx.user.ID, &usecase.ChangePasswordInput{CurrentPassword: "p", NewPassword: "q"}))

	_, err = fx.auth.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "p"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = fx.auth.Login(ctx, &usecase.LoginInput{Email: "a@x.com", Password: "q"})
	assert.NoError(t, err)
}

func TestProfileService_DeleteAccount(t *testing.T) {
	fx := newProfileFixtures(t)
	ctx := context.Background()

	_, err := fx.tasks.CreateTask(ctx, fx.user.ID, &usecase.CreateTaskInput{Title: "mine"})
	require.NoError(t, err)
	_, err = fx.tasks.CreateTask(ctx, uuid.New(), &usecase.CreateTaskInput{Title: "someone else's"})
	require.NoError(t, err)

	require.NoError(t, fx.profile.DeleteAccount(ctx, fx.user.ID))

	tasks, err := fx.tasks.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "someone else's", tasks[0].Title)

	_, err = fx.auth.ResolveIdentity(ctx, fx.token)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	err = fx.profile.DeleteAccount(ctx, fx.user.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_DeleteAccount_RollsBackOnTaskFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	users := mockRepo.NewMockUserRepository(t)
	tasks := mockRepo.NewMockTaskRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	srv := NewProfileService(ProfileServiceParams{
		TxManager: txManager,
		UserRepo:  users,
		Logger:    newDiscardLogger(),
	})

	users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	tasks.On("DeleteByCreator", ctx, userID).Return(int64(0), errors.New("disk full"))

	var fnErr error
	txManager.On("Execute", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)
			fnErr = fn(&mockRepo.MockRepositoryFactory{Users: users, Tasks: tasks})
		}).
		Return(errors.New("rolled back"))

	err := srv.DeleteAccount(ctx, userID)
	require.Error(t, err)
	assert.ErrorContains(t, fnErr, "disk full")
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
