package impl

import (
	"io"
	"log/slog"
	"testing"

	"tasktrack/config"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/infra/auth"
	"tasktrack/internal/infra/persistence/memory"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	cfg.SecretKey.Credential = "test_credential_secret_key_very_long_for_testing"
	cfg.ApplyDefaults()

	return cfg
}

type serviceFixtures struct {
	store  *memory.Store
	hasher service.PasswordHasher
	tokens service.TokenService
	auth   *authService
}

func newServiceFixtures(t *testing.T) serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(cfg)

	authSrv := NewAuthService(AuthServiceParams{
		UserRepo:     store.UserRepo(),
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	}).(*authService)

	return serviceFixtures{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		auth:   authSrv,
	}
}
