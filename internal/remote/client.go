// Package remote talks to the TrickPlanner sync server.
package remote

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
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
	"github.com/asteroid-belt/trickplanner/pkg/version"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond paces outbound requests.
	DefaultRequestsPerSecond = 5

	// maxResponseBytes caps how much of a response is read.
	maxResponseBytes = 32 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	// HTTPClient is the underlying client. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client calls the auth and sync endpoints. Sync calls carry the bearer
// token set with SetToken.
type Client struct {
	baseURL string
	timeout time.Duration
	base    *http.Client
	limiter *rate.Limiter

	mu     sync.RWMutex
	token  string
	authed *http.Client
}

// New creates a client for the server at cfg.BaseURL.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	burst := max(int(cfg.RequestsPerSecond), 1)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		base:    cfg.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// SetToken sets the bearer token for sync calls. An empty token signs out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.authed = nil
	if token == "" {
		return
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	c.authed = oauth2.NewClient(ctx, ts)
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return &Error{Op: "register", Err: err}
	}

	_, err = c.do(ctx, c.base, "register", http.MethodPost, "/auth/register", "application/json", body)
	return err
}

// Login exchanges credentials for an access token. The token is not
// installed on the client; call SetToken.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	data, err := c.do(ctx, c.base, "login", http.MethodPost, "/auth/login",
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return "", err
	}

	token := gjson.GetBytes(data, "access_token")
	if token.Type != gjson.String || token.String() == "" {
		return "", &Error{Op: "login", StatusCode: http.StatusOK, Err: errors.New("response has no access_token")}
	}
	return token.String(), nil
}

// FetchSync downloads the full remote snapshot. A body that does not
// decode is reported as an *Error wrapping a *planner.DecodeError.
func (c *Client) FetchSync(ctx context.Context) (models.Snapshot, error) {
	authed, err := c.authedClient()
	if err != nil {
		return models.Snapshot{}, err
	}

	data, err := c.do(ctx, authed, "sync fetch", http.MethodGet, "/sync", "", nil)
	if err != nil {
		return models.Snapshot{}, err
	}

	snap, err := planner.DecodeSnapshot(data)
	if err != nil {
		return models.Snapshot{}, &Error{Op: "sync fetch", StatusCode: http.StatusOK, Err: err}
	}
	return snap, nil
}

// PushSync uploads the full snapshot, replacing the remote copy.
func (c *Client) PushSync(ctx context.Context, snap models.Snapshot) error {
	authed, err := c.authedClient()
	if err != nil {
		return err
	}

	body, err := planner.EncodeSnapshot(snap)
	if err != nil {
		return &Error{Op: "sync push", Err: err}
	}

	_, err = c.do(ctx, authed, "sync push", http.MethodPut, "/sync", "application/json", body)
	return err
}

func (c *Client) authedClient() (*http.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.authed == nil {
		return nil, ErrNotAuthenticated
	}
	return c.authed, nil
}

// do performs one paced request and returns the body of a 200 response.
func (c *Client) do(ctx context.Context, hc *http.Client, op, method, path, contentType string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
