package groupsio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const authorizationHeader = "Authorization"

// Client represents a Groups.io API client. It holds the API key used to log
// in and the session token every later call authenticates with.
type Client struct {
	apiRoot    *url.URL
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a new Groups.io client rooted at https://{hostname}/{version}.
// No request is made until Login is called.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	hostname := strings.Trim(strings.TrimSpace(o.hostname), "/")
	version := strings.Trim(strings.TrimSpace(o.version), "/")
	if hostname == "" {
		return nil, fmt.Errorf("%w: hostname is required", ErrInvalidConfig)
	}
	if version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrInvalidConfig)
	}

	root, err := url.Parse("https://" + hostname + "/" + version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		apiRoot:    root,
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "groupsio").Logger(),
	}, nil
}

// APIRoot returns the versioned API root URL.
func (c *Client) APIRoot() string {
	return c.apiRoot.String()
}

// Token returns the current session token, or "" before Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken installs a session token obtained elsewhere, e.g. from a previous
// Login of the same user.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login authenticates with email and password and stores the session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.login(ctx, email, password, nil)
}

// LoginWithTwoFactor is Login for accounts with two-factor authentication.
func (c *Client) LoginWithTwoFactor(ctx context.Context, email, password string, code int) error {
	return c.login(ctx, email, password, &code)
}

func (c *Client) login(ctx context.Context, email, password string, twoFactor *int) error {
	b := NewRequest(http.MethodGet, "/login").
		Param("email", email).
		Param("password", password).
		Header(authorizationHeader, basicCredential(c.apiKey))
	if twoFactor != nil {
		b.Param("twofactor", strconv.Itoa(*twoFactor))
	}

	req, err := b.Build()
	if err != nil {
		return err
	}

	login, err := Call[Login](ctx, c, req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if login.Token == "" {
		return &TransportError{Op: "login", StatusCode: http.StatusOK, Err: fmt.Errorf("response carried no token")}
	}

	c.SetToken(login.Token)
	c.logger.Debug().Str("user", login.User.Email).Msg("Logged in to Groups.io")
	return nil
}

// Call executes req and decodes the response as a T. A non-200 response, or
// a 200 response that does not decode as T but does decode as an error
// envelope, yields an *APIError; anything else that fails is a
// *TransportError.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var zero T

	status, body, err := c.do(ctx, req)
	if err != nil {
		return zero, err
	}

	if status != http.StatusOK {
		return zero, c.classify(req, status, body, nil)
	}

	out, err := decode[T](body)
	if err != nil {
		return zero, c.classify(req, status, body, err)
	}
	return out, nil
}

// classify turns a failed response body into the error the caller sees.
func (c *Client) classify(req Request, status int, body []byte, decodeErr error) error {
	payload, err := decodeError(body)
	if err != nil {
		if decodeErr == nil {
			decodeErr = err
		}
		return &TransportError{Op: opName(req), StatusCode: status, Err: decodeErr}
	}

	apiErr := payload.apiError(status)

	c.logger.Debug().
		Str("path", req.Path()).
		Int("status", status).
		Str("type", string(apiErr.Type)).
		Str("extra", apiErr.Extra).
		Msg("Groups.io API returned an error")
	return apiErr
}

// do performs one HTTP round trip and buffers the whole response body.
func (c *Client) do(ctx context.Context, req Request) (int, []byte, error) {
	endpoint := c.endpoint(req)

	var bodyReader io.Reader
	reqBody := req.Body()
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody.Data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), endpoint, bodyReader)
	if err != nil {
		return 0, nil, &TransportError{Op: opName(req), Err: fmt.Errorf("failed to create request: %w", err)}
	}

	for k, v := range req.Headers() {
		httpReq.Header.Set(k, v)
	}
	if !hasHeader(req, authorizationHeader) {
		httpReq.Header.Set(authorizationHeader, basicCredential(c.Token()))
	}
	if reqBody != nil && reqBody.ContentType != "" {
		httpReq.Header.Set("Content-Type", reqBody.ContentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, &TransportError{Op: opName(req), Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: opName(req), StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", req.Method()).
		Str("path", req.Path()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Groups.io API request")

	return resp.StatusCode, body, nil
}

// endpoint joins the API root, the request path and the query string.
func (c *Client) endpoint(req Request) string {
	u := *c.apiRoot
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(req.Path(), "/")
	u.RawQuery = req.RawQuery()
	return u.String()
}

// hasHeader reports whether req sets key, ignoring case.
func hasHeader(req Request, key string) bool {
	for k := range req.Headers() {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func basicCredential(credential string) string {
	return "Basic " + credential + ":"
}

func opName(req Request) string {
	return req.Method() + " " + req.Path()
}
