// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Configuration constants for the portal API.
const (
	// DefaultTimeout is the default timeout for a single request.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 1 << 20 // 1MB

	// DefaultRequestsPerSecond paces requests to the backend.
	DefaultRequestsPerSecond = 5

	// DefaultBurst is the token bucket size. Login fires two requests at once.
	DefaultBurst = 4

	// HeaderUserDN carries the identity claim on every request.
	HeaderUserDN = "UserDN"

	// HeaderRequestID correlates client log lines with backend log lines.
	HeaderRequestID = "X-Request-ID"

	userPath    = "/api/v1/user"
	projectPath = "/api/v1/project"
	healthPath  = "/healthcheck"

	// maxErrorBody bounds the response text kept on a RequestError.
	maxErrorBody = 200
)

// Client is a client for the Play With CK8S backend.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	userDN     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the server at baseURL acting as userDN.
func NewClient(baseURL, userDN string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userDN:    userDN,
		userAgent: "pwck8s",
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRateLimit replaces the request pacing. A non-positive rps disables it.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithUserAgent sets the User-Agent header value.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserDN returns the identity the client presents.
func (c *Client) UserDN() string {
	return c.userDN
}

// =============================================================================
// SESSION ENDPOINTS
// =============================================================================

// GetUser fetches the current session for the identity.
// The backend answers 200 with a user record. An empty userId means no session.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, userPath, only(http.StatusOK), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser provisions a new session. The backend must answer 201.
func (c *Client) CreateUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, userPath, only(http.StatusCreated), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser tears the session down. Any 2xx status is success.
func (c *Client) DeleteUser(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, userPath, any2xx)
	return err
}

// CreateProject provisions the sandbox project. The backend must answer 201.
func (c *Client) CreateProject(ctx context.Context) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPost, projectPath, only(http.StatusCreated), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject fetches the project owned by the identity.
func (c *Client) GetProject(ctx context.Context) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodGet, projectPath, only(http.StatusOK), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Health checks the backend liveness endpoint, which answers "OK".
func (c *Client) Health(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, healthPath, only(http.StatusOK))
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "OK" {
		return &RequestError{
			Op:     "GET " + healthPath,
			Status: http.StatusOK,
			Body:   truncateBody(body),
			Err:    ErrUnavailable,
		}
	}
	return nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

type statusCheck func(status int) bool

func only(want int) statusCheck {
	return func(status int) bool { return status == want }
}

func any2xx(status int) bool {
	return status >= 200 && status < 300
}

// doJSON performs a request and decodes the JSON body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, ok statusCheck, out any) error {
	body, err := c.do(ctx, method, path, ok)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{
			Op:  method + " " + path,
			Err: fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// do performs a single request. It never retries.
func (c *Client) do(ctx context.Context, method, path string, ok statusCheck) ([]byte, error) {
	op := method + " " + path
	requestID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"op":         op,
		"request_id": requestID,
	})

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RequestError{Op: op, RequestID: requestID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, &RequestError{Op: op, RequestID: requestID, Err: err}
	}
	req.Header.Set(HeaderUserDN, c.userDN)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Debug("request failed")
		if errors.Is(err, context.Canceled) {
			return nil, &RequestError{Op: op, RequestID: requestID, Err: err}
		}
		return nil, &RequestError{
			Op:        op,
			RequestID: requestID,
			Err:       fmt.Errorf("%w: %v", ErrUnavailable, err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, &RequestError{
			Op:        op,
			Status:    resp.StatusCode,
			RequestID: requestID,
			Err:       fmt.Errorf("read response: %w", err),
		}
	}

	logger.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("request completed")

	if !ok(resp.StatusCode) {
		return nil, &RequestError{
			Op:        op,
			Status:    resp.StatusCode,
			Body:      truncateBody(body),
			RequestID: requestID,
			Err:       classifyStatus(resp.StatusCode),
		}
	}
	return body, nil
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
