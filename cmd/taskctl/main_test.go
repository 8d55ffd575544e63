package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"tasktrack/config"
	"tasktrack/internal/delivery/api"
	"tasktrack/internal/delivery/api/middleware"
	"tasktrack/internal/delivery/api/router"
	"tasktrack/internal/delivery/api/router/handler"
	"tasktrack/internal/infra/auth"
	"tasktrack/internal/infra/persistence/memory"
	"tasktrack/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newBackend(t *testing.T) string {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	cfg.SecretKey.Credential = "taskctl-test-secret"
	cfg.ApplyDefaults()

	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	e := api.NewEcho(cfg, logger, router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthUC: impl.NewAuthService(impl.AuthServiceParams{
				UserRepo: store.UserRepo(), Hasher: hasher, TokenService: tokens, Logger: logger,
			}),
			Logger: logger,
		}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{
			ProfileUC: impl.NewProfileService(impl.ProfileServiceParams{
				TxManager: store.TransactionManager(), UserRepo: store.UserRepo(), Hasher: hasher, Logger: logger,
			}),
			Logger: logger,
		}),
		TaskHandler: handler.NewTaskHandler(handler.TaskHandlerParams{
			TaskUC: impl.NewTaskService(impl.TaskServiceParams{TaskRepo: store.TaskRepo(), Logger: logger}),
			Logger: logger,
		}),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokens),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(cfg),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return srv.URL
}

type cli struct {
	t        *testing.T
	server   string
	credFile string
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()

	var out bytes.Buffer
	global := []string{"--server", c.server, "--credential-file", c.credFile}
	err := run(context.Background(), append(global, args...), strings.NewReader(stdin), &out, &out)

	return out.String(), err
}

func TestTaskctl_EndToEnd(t *testing.T) {
	c := &cli{t: t, server: newBackend(t), credFile: filepath.Join(t.TempDir(), "credential.json")}

	out, err := c.run("", "tasks", "list")
	assert.ErrorIs(t, err, errDenied)
	assert.Contains(t, out, "taskctl login")

	out, err = c.run("p\n", "register", "--name", "A", "--email", "a@x.com", "--country", "US")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Welcome, A")

	out, err = c.run("", "whoami")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Checking authentication...")
	assert.Contains(t, out, "A <a@x.com> (US)")

	out, err = c.run("", "tasks", "add", "--title", "Write docs")
	assert.Error(t, err)
	assert.NotContains(t, out, "Created task")

	out, err = c.run("", "tasks", "add", "--title", "Write docs", "--due", "2025-06-01", "--priority", "High")
	require.NoError(t, err, out)
	id := regexp.MustCompile(`Created task ([0-9a-f-]{36})`).FindStringSubmatch(out)
	require.Len(t, id, 2, out)

	out, err = c.run("", "tasks", "edit", id[1], "--status", "In Progress")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Updated task")

	out, err = c.run("", "tasks", "edit", id[1], "--status", "In Progress")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Nothing to change.")

	out, err = c.run("", "tasks", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "2025-06-01")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "High")

	out, err = c.run("", "tasks", "rm", id[1])
	require.NoError(t, err, out)
	out, err = c.run("", "tasks", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "No tasks yet.")

	out, err = c.run("", "logout")
	require.NoError(t, err)
	out, err = c.run("", "verify")
	assert.ErrorIs(t, err, errDenied)
	assert.Contains(t, out, "Session denied")

	out, err = c.run("wrong\n", "login", "--email", "a@x.com")
	assert.ErrorContains(t, err, "Invalid email or password")

	out, err = c.run("p\n", "login", "--email", "a@x.com")
	require.NoError(t, err, out)
	out, err = c.run("", "verify")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Session granted")
}

func TestTaskctl_UnreachableServerFailsClosed(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "credential.json")
	c := &cli{t: t, server: newBackend(t), credFile: credFile}
	_, err := c.run("p\n", "register", "--name", "A", "--email", "a@x.com", "--country", "US")
	require.NoError(t, err)

	down := &cli{t: t, server: "http://127.0.0.1:1", credFile: credFile}
	out, err := down.run("", "whoami")
	assert.ErrorIs(t, err, errDenied)
	assert.NotContains(t, out, "a@x.com")

	out, err = c.run("", "whoami")
	require.NoError(t, err, out)
	assert.Contains(t, out, "a@x.com")
}

func TestTaskctl_Usage(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), nil, strings.NewReader(""), &out, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "tasks list")

	c := &cli{t: t, server: "http://127.0.0.1:1", credFile: filepath.Join(t.TempDir(), "c.json")}
	_, err = c.run("", "frobnicate")
	assert.ErrorContains(t, err, "unknown command")
}
