// Package expertbi is the Go client for the ExpertBI API.
package expertbi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// APIError is the decoded error envelope of a failed API call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("expertbi: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to an ExpertBI API server. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	apiKey string

	mu    sync.RWMutex
	token string

	onUnauthorized func()

	pollInterval time.Duration
	pollAttempts int
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates every request with the given API key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithToken seeds the session with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(timeout) }
}

// OnUnauthorized registers a hook invoked when the server rejects the
// session credentials. The session token is cleared before the hook runs.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithPolling overrides the analysis polling cadence and attempt budget.
func WithPolling(interval time.Duration, attempts int) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollAttempts = attempts
	}
}

// NewClient creates a client for the API server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL + "/api/v1").
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearSession drops the session token.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// newRequest builds a request carrying the configured credentials.
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.apiKey != "" {
		req.SetHeader("X-API-Key", c.apiKey)
	}
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// checkResponse maps non-2xx responses to an *APIError. A 401 clears the
// session and fires the OnUnauthorized hook once.
func (c *Client) checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: "unknown error"}
	var envelope struct {
		Error string `json:"error"`
	}
	if unmarshalErr := json.Unmarshal(resp.Body(), &envelope); unmarshalErr == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}

	if apiErr.StatusCode == 401 {
		c.ClearSession()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	return apiErr
}

// User is an ExpertBI account.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register creates an account and hydrates the session with its token.
func (c *Client) Register(ctx context.Context, email, name, password string) (*User, error) {
	var out authResponse
	resp, err := c.newRequest(ctx).
		SetBody(map[string]string{"email": email, "name": name, "password": password}).
		SetResult(&out).
		Post("/auth/register")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.setToken(out.Token)
	return &out.User, nil
}

// Login authenticates and hydrates the session with the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out authResponse
	resp, err := c.newRequest(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/auth/login")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.setToken(out.Token)
	return &out.User, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	resp, err := c.newRequest(ctx).SetResult(&out).Get("/auth/me")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
