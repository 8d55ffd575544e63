package handler

import (
	"log/slog"

	"tasktrack/internal/delivery/api/response"
	deliverycontext "tasktrack/internal/delivery/context"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves /api/users/me for the signed-in user.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"user": response.NewUser(user)})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := bindBody(c, &input); err != nil {
		return err
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"user": response.NewUser(user)})
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var input usecase.ChangePasswordInput
	if err := bindBody(c, &input); err != nil {
		return err
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.profileUC.ChangePassword(c.Request().Context(), userID, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"message": "Password updated"})
}

// DeleteAccount removes the user and their tasks.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	if err := h.profileUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, echo.Map{"message": "Account deleted"})
}

// subjectID returns the user set by AuthMiddleware.Authenticate.
func subjectID(c echo.Context) (uuid.UUID, error) {
	id, ok := deliverycontext.GetSubjectID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return id, nil
}
