package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mortardata/mortar/internal/branding"
)

const apiVersion = "v2"

// ErrNoCredentials is returned when no email or API key is configured.
var ErrNoCredentials = errors.New("not logged in: set email and api_key with '" + branding.CLIName() + " settings set'")

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// Client talks to the Mortar API.
type Client struct {
	baseURL    string
	email      string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the scheme and host derived from the configured host.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a client for host authenticated as email with apiKey.
func New(host, email, apiKey string, opts ...Option) (*Client, error) {
	if email == "" || apiKey == "" {
		return nil, ErrNoCredentials
	}

	c := &Client{
		baseURL:    "https://" + strings.TrimRight(host, "/"),
		email:      email,
		apiKey:     apiKey,
		userAgent:  branding.CLIName() + "-cli",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// User is the authenticated account.
type User struct {
	Email           string `json:"email"`
	GitOrganization string `json:"git_organization"`
	OrgID           string `json:"org_id"`
}

type configEnvelope struct {
	Config map[string]any `json:"config"`
}

// GetUser returns the authenticated user.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "user", nil, &u); err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &u, nil
}

// GetConfigVars returns every config var of project. Values are strings,
// booleans, or nil as stored by the service.
func (c *Client) GetConfigVars(ctx context.Context, project string) (map[string]any, error) {
	var env configEnvelope
	if err := c.do(ctx, http.MethodGet, configPath(project), nil, &env); err != nil {
		return nil, fmt.Errorf("fetching config vars for %s: %w", project, err)
	}
	if env.Config == nil {
		env.Config = map[string]any{}
	}
	return env.Config, nil
}

// PutConfigVars sets vars on project, leaving other vars untouched.
func (c *Client) PutConfigVars(ctx context.Context, project string, vars map[string]string) error {
	body := map[string]map[string]string{"config": vars}
	if err := c.do(ctx, http.MethodPut, configPath(project), body, nil); err != nil {
		return fmt.Errorf("setting config vars for %s: %w", project, err)
	}
	return nil
}

// DeleteConfigVar removes key from project.
func (c *Client) DeleteConfigVar(ctx context.Context, project, key string) error {
	p := configPath(project) + "/" + url.PathEscape(key)
	if err := c.do(ctx, http.MethodDelete, p, nil, nil); err != nil {
		return fmt.Errorf("unsetting %s for %s: %w", key, project, err)
	}
	return nil
}

func configPath(project string) string {
	return "config/" + url.PathEscape(project)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := fmt.Sprintf("%s/%s/%s", c.baseURL, apiVersion, path)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response JSON: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return &APIError{StatusCode: status, Message: payload.Error}
	}

	switch status {
	case http.StatusUnauthorized:
		return &APIError{StatusCode: status, Message: "Authentication failed. Check your email and api_key settings."}
	case http.StatusNotFound:
		return &APIError{StatusCode: status, Message: "Resource not found."}
	}
	return &APIError{StatusCode: status}
}
