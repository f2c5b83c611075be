package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/citasalud/mobile-core/internal/observability/metrics"
	"github.com/citasalud/mobile-core/internal/session"
	"github.com/citasalud/mobile-core/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// publicRoutes are reachable without a bearer token. Matching is by exact
// path: substring matching would let any route containing "login" skip auth.
var publicRoutes = map[string]struct{}{
	"/login":     {},
	"/registrar": {},
}

// Client issues authenticated requests against the clinic backend. The
// session manager is injected so token reads and the 401 clear side effect
// are explicit rather than ambient storage lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Manager
	logger     *logging.Logger
	metrics    *metrics.APIMetrics
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (timeouts, transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics attaches request metrics. Nil-safe when absent.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, sess *session.Manager, logger *logging.Logger, opts ...Option) *Client {
	if sess == nil {
		panic("api: session manager required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    sess,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one request and decodes a 2xx JSON body into out (out may be
// nil). route is the path template used for metric labels; path is the
// concrete URL path. Every failure comes back as *APIError or
// session.ErrExpired; callers never see raw transport errors undecorated.
func (c *Client) do(ctx context.Context, method, route, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	_, public := publicRoutes[path]
	if !public {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(route, "transport_error", time.Since(start).Seconds())
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(route, statusClass(resp.StatusCode), time.Since(start).Seconds())

	// A 401 on an authenticated route invalidates the whole session. On a
	// public route it is an ordinary failure (wrong credentials).
	if resp.StatusCode == http.StatusUnauthorized && !public {
		c.metrics.ObserveSessionExpired()
		c.logger.Warn("session expired, clearing stored credentials", "path", path)
		if err := c.session.Clear(); err != nil {
			c.logger.Error("failed to clear session", "error", err)
		}
		return session.ErrExpired
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorBody(resp.StatusCode, respBody)
		c.logger.Warn("backend rejected request",
			"method", method, "path", path, "status", resp.StatusCode, "mensaje", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "other"
	}
}
