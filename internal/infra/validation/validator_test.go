package validation

import (
	"testing"

	domainerrors "tasktrack/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Priority string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&signup{Name: "A", Email: "a@x.com"}))
	assert.NoError(t, v.Validate(&signup{Name: "A", Email: "a@x.com", Priority: "High"}))
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&signup{Email: "not-an-email", Priority: "Urgent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "name is required")
	assert.Contains(t, appErr.Details(), "email must be a valid email address")
	assert.Contains(t, appErr.Details(), "priority must be one of: Low Medium High")
}

func TestValidator_NonStruct(t *testing.T) {
	err := New().Validate("just a string")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
