package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktrack/internal/client/credential"
	"tasktrack/internal/client/model"
	"tasktrack/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "signed.test.token"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	userID := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "p" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   map[string]string{"code": "INVALID_CREDENTIALS", "message": "Invalid email or password"},
			})

			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"token":     testToken,
			"expiresAt": "2030-01-01T00:00:00Z",
			"user":      map[string]any{"id": userID, "email": body["email"]},
		})
	})
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"isValid": r.Header.Get("Authorization") == "Bearer "+testToken})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": map[string]any{"id": userID, "name": "Fresh"}})
	})
	mux.HandleFunc("GET /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "tasks": []map[string]any{
			{"id": uuid.New(), "title": "b", "priority": "High", "status": "Pending"},
			{"id": uuid.New(), "title": "a", "priority": "Low", "status": "Completed"},
		}})
	})
	mux.HandleFunc("DELETE /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_LoginStoresSession(t *testing.T) {
	srv := newFakeAPI(t)
	store := credential.NewMemoryStore()
	client := New(srv.URL+"/", store)
	ctx := context.Background()

	_, err := client.Login(ctx, "a@x.com", "wrong")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	_, err = store.Get()
	assert.True(t, errors.Is(err, credential.ErrNoSession))

	session, err := client.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, testToken, session.Token)
	assert.Equal(t, 2030, session.ExpiresAt.Year())

	stored, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, testToken, stored.Token)
	assert.Equal(t, "a@x.com", stored.User.Email)

	user, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", user.Name)
	stored, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, "Fresh", stored.User.Name)

	require.NoError(t, client.Logout())
	_, err = store.Get()
	assert.True(t, errors.Is(err, credential.ErrNoSession))
}

func TestClient_Verify(t *testing.T) {
	client := New(newFakeAPI(t).URL, credential.NewMemoryStore())
	ctx := context.Background()

	valid, err := client.Verify(ctx, testToken)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.Verify(ctx, "other")
	require.NoError(t, err)
	assert.False(t, valid)

	down := New("http://127.0.0.1:1", credential.NewMemoryStore())
	_, err = down.Verify(ctx, testToken)
	assert.Error(t, err)
}

func TestClient_Tasks(t *testing.T) {
	store := credential.NewMemoryStore()
	client := New(newFakeAPI(t).URL, store)
	ctx := context.Background()

	_, err := client.ListTasks(ctx)
	assert.True(t, errors.Is(err, ErrNotSignedIn))

	require.NoError(t, store.Set(&model.Session{Token: testToken}))
	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[0].Title)

	err = client.DeleteTask(ctx, uuid.New())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "HTTP_ERROR", apiErr.Code)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
