// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasktrack/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Country  string `json:"country" validate:"required,max=100"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is returned by both registration and login. User carries no password hash.
type AuthOutput struct {
	Credential *entity.Credential
	User       *entity.User
}

// AuthUsecase issues and verifies credentials.
type AuthUsecase interface {
	// Register creates the identity and issues its first credential.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login fails with the generic ErrInvalidCredentials for an unknown email
	// and for a wrong password alike.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Verify never fails; every problem is reported as an invalid verdict.
	Verify(ctx context.Context, token string) entity.Verdict

	// ResolveIdentity verifies the token and loads its subject.
	ResolveIdentity(ctx context.Context, token string) (*entity.User, error)
}
