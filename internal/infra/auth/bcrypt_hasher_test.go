package auth

import (
	"strings"
	"testing"

	"tasktrack/config"
	domainerrors "tasktrack/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(bcrypt.MinCost, nil)

	hash, err := hasher.Hash("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hash)

	assert.True(t, hasher.Check("p", hash))
	assert.False(t, hasher.Check("q", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("p", "invalid_hash"))
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(bcrypt.MinCost, nil)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 10}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(99, nil).(*bcryptHasher)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_ValidatePasswordStrength_NoPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(bcrypt.MinCost, nil)

	assert.NoError(t, hasher.ValidatePasswordStrength("p"))

	err := hasher.ValidatePasswordStrength("")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	err = hasher.ValidatePasswordStrength(strings.Repeat("a", 73))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestBcryptHasher_ValidatePasswordStrength_Policy(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(bcrypt.MinCost, &config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	})

	assert.NoError(t, hasher.ValidatePasswordStrength("StrongPass123!"))
	assert.NoError(t, hasher.ValidatePasswordStrength("Pässphräse123!"))

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"Ab1!", "at least 8 characters"},
		{"PASSWORD123!", "lowercase letter"},
		{"password123!", "uppercase letter"},
		{"PasswordABC!", "number"},
		{"Password123", "special character"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		require.Error(t, err, "Expected error for password: %s", tc.password)
		assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Details(), tc.expectedErr)
	}
}
