package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasktrack/config"
	"tasktrack/internal/delivery/api/response"
	deliverycontext "tasktrack/internal/delivery/context"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	mockService "tasktrack/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.DiscardHandler)).HandleHTTPError

	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	testCases := map[string]struct {
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails string
	}{
		"app error keeps details": {
			err:         errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("email is required")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "Please provide all required fields",
			wantDetails: "email is required",
		},
		"unauthorized hides details": {
			err:         domainerrors.ErrUnauthorized.WithDetails("missing bearer token"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "UNAUTHORIZED",
			wantMessage: domainerrors.ErrUnauthorized.Message(),
		},
		"echo error": {
			err:         echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Request Entity Too Large",
		},
		"unknown error is generic": {
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Server error",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			e.GET("/", func(echo.Context) error { return tc.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.Equal(t, tc.wantMessage, body.Error.Message)
			assert.Equal(t, tc.wantDetails, body.Error.Details)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	subject := uuid.New()
	tokens := mockService.NewMockTokenService(t)
	tokens.On("Verify", "good").Return(entity.Verdict{Valid: true, SubjectID: subject})
	tokens.On("Verify", "bad").Return(entity.InvalidVerdict)

	e := newTestEcho()
	e.GET("/", func(c echo.Context) error {
		id, ok := deliverycontext.GetSubjectID(c)
		require.True(t, ok)

		return c.String(http.StatusOK, id.String())
	}, NewAuthMiddleware(tokens).Authenticate)

	testCases := map[string]struct {
		header     string
		wantStatus int
	}{
		"missing header": {header: "", wantStatus: http.StatusUnauthorized},
		"not bearer":     {header: "Basic abc", wantStatus: http.StatusUnauthorized},
		"empty bearer":   {header: "Bearer   ", wantStatus: http.StatusUnauthorized},
		"invalid token":  {header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		"valid token":    {header: "bearer good", wantStatus: http.StatusOK},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, subject.String(), rec.Body.String())
			} else {
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Error.Code)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := &config.Config{RateLimit: &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
		IdleTTL:           time.Minute,
	}}
	limiter := NewRateLimitMiddleware(cfg)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	e := newTestEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, limiter.Limit)

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit("10.0.0.3"))
	limiter.mu.Lock()
	assert.Len(t, limiter.visitors, 1)
	limiter.mu.Unlock()
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	limiter := NewRateLimitMiddleware(&config.Config{})
	e := newTestEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, limiter.Limit)

	for range 20 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
