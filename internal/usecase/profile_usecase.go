package usecase

import (
	"context"

	"tasktrack/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput holds the profile fields to change; nil fields are kept.
type UpdateProfileInput struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ProfileUsecase manages the signed-in user's own account.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error

	// DeleteAccount removes the user and every task they created.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
