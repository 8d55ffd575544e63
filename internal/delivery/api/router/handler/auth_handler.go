package handler

import (
	"log/slog"
	"net/http"

	"tasktrack/internal/delivery/api/middleware"
	"tasktrack/internal/delivery/api/response"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	out, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, authFields(out))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, authFields(out))
}

// Me handles GET /api/auth/me. A credential that fails verification is
// Unauthorized (401), not a server error.
func (h *AuthHandler) Me(c echo.Context) error {
	token, ok := middleware.BearerToken(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.authUC.ResolveIdentity(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"user": response.NewUser(user)})
}

// Verify handles GET /api/auth/verify. It always answers 200.
func (h *AuthHandler) Verify(c echo.Context) error {
	valid := false
	if token, ok := middleware.BearerToken(c); ok {
		valid = h.authUC.Verify(c.Request().Context(), token).Valid
	}

	return c.JSON(http.StatusOK, echo.Map{"isValid": valid})
}

func authFields(out *usecase.AuthOutput) echo.Map {
	return echo.Map{
		"token":     out.Credential.Token,
		"expiresAt": out.Credential.ExpiresAt,
		"user":      response.NewUser(out.User),
	}
}

// bindBody decodes the JSON body and reports malformed input as a validation error.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON")
	}

	return nil
}
