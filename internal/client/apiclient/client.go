// Package apiclient talks to the tasktrack HTTP API and keeps the session in
// a credential.Store.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tasktrack/internal/client/credential"
	"tasktrack/internal/client/model"
	"tasktrack/internal/errors"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// ErrNotSignedIn is returned by calls that need a credential when the store is empty.
var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d %s): %s", e.Message, e.Status, e.Code, e.Details)
	}

	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      credential.Store
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, store credential.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Store returns the credential store the client persists sessions to.
func (c *Client) Store() credential.Store {
	return c.store
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Register creates an account and stores the issued credential.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.Session, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}

	return c.saveSession(out)
}

// Login stores the issued credential. A failed login leaves the store untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}

	return c.saveSession(out)
}

// Logout discards the stored credential. Credentials are stateless, so the
// server is not contacted.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Me loads the signed-in user and refreshes the cached copy.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", session.Token, nil, &out); err != nil {
		return nil, err
	}

	session.User = out.User
	if err := c.store.Set(session); err != nil {
		return nil, errors.Wrap(err, "cache user")
	}

	return out.User, nil
}

// Verify asks the server whether token is valid. An error means the
// question could not be answered.
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	var out struct {
		IsValid bool `json:"isValid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &out); err != nil {
		return false, err
	}

	return out.IsValid, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]*model.Task, error) {
	var out struct {
		Tasks []*model.Task `json:"tasks"`
	}
	if err := c.authed(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}

	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return c.taskCall(ctx, http.MethodGet, "/api/tasks/"+id.String(), nil)
}

func (c *Client) CreateTask(ctx context.Context, payload *model.TaskPayload) (*model.Task, error) {
	return c.taskCall(ctx, http.MethodPost, "/api/tasks", payload)
}

func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, payload *model.TaskPayload) (*model.Task, error) {
	return c.taskCall(ctx, http.MethodPut, "/api/tasks/"+id.String(), payload)
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.authed(ctx, http.MethodDelete, "/api/tasks/"+id.String(), nil, nil)
}

func (c *Client) taskCall(ctx context.Context, method, path string, body any) (*model.Task, error) {
	var out struct {
		Task *model.Task `json:"task"`
	}
	if err := c.authed(ctx, method, path, body, &out); err != nil {
		return nil, err
	}

	return out.Task, nil
}

func (c *Client) saveSession(out authResponse) (*model.Session, error) {
	session := &model.Session{Token: out.Token, ExpiresAt: out.ExpiresAt, User: out.User}
	if err := c.store.Set(session); err != nil {
		return nil, errors.Wrap(err, "store credential")
	}

	return session, nil
}

func (c *Client) session() (*model.Session, error) {
	session, err := c.store.Get()
	if errors.Is(err, credential.ErrNoSession) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, errors.Wrap(err, "load credential")
	}

	return session, nil
}

func (c *Client) authed(ctx context.Context, method, path string, body, out any) error {
	session, err := c.session()
	if err != nil {
		return err
	}

	return c.do(ctx, method, path, session.Token, body, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(raw, out), "decode response")
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Code: "HTTP_ERROR", Message: http.StatusText(status)}

	var envelope errorEnvelope
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	}

	return apiErr
}
