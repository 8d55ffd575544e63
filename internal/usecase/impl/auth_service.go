// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasktrack/internal/delivery/context"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, stores the new identity and issues its credential.
// The identity store is untouched when validation fails.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}

	in := *input
	trimmed(&in.Name)
	trimmed(&in.Country)
	in.Email = entity.NormalizeEmail(in.Email)

	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if err := srv.hasher.ValidatePasswordStrength(in.Password); err != nil {
		return nil, errors.WithStack(err)
	}

	_, err := srv.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hash, err := srv.hasher.Hash(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Country:      in.Country,
	}
	// A concurrent registration for the same email surfaces here as ErrDuplicateIdentity.
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	cred, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, domainerrors.ErrCredentialIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()))

	return &usecase.AuthOutput{Credential: cred, User: user.Sanitized()}, nil
}

// Login checks the password and issues a credential.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}

	in := *input
	in.Email = entity.NormalizeEmail(in.Email)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Debug("Login for unknown email")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	if !srv.hasher.Check(in.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Login with wrong password", slog.String("userID", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	cred, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, domainerrors.ErrCredentialIssueFailed.WrapMessage(err.Error())
	}

	return &usecase.AuthOutput{Credential: cred, User: user.Sanitized()}, nil
}

// Verify delegates to the token service.
func (srv *authService) Verify(ctx context.Context, token string) entity.Verdict {
	verdict := srv.tokenService.Verify(token)
	if !verdict.Valid {
		srv.log(ctx).Debug("Credential rejected")
	}

	return verdict
}

// ResolveIdentity returns the credential's subject without its password hash.
// A subject deleted after issuance is reported as ErrUserNotFound.
func (srv *authService) ResolveIdentity(ctx context.Context, token string) (*entity.User, error) {
	verdict := srv.tokenService.Verify(token)
	if !verdict.Valid {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := srv.userRepo.FindByID(ctx, verdict.SubjectID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Credential subject no longer exists", slog.String("userID", verdict.SubjectID.String()))

		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load identity")
	}

	return user.Sanitized(), nil
}
