// Package api is a typed client for the TaskFlow backend REST surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every round trip unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the bearer credential for authenticated calls.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed value.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Client wraps outbound calls to the TaskFlow backend. It normalizes
// transport, HTTP and parse failures into one error taxonomy and never
// retries on its own.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:4000/api". A nil tokens source means all calls are
// unauthenticated.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		// Generous burst for a single-operator tool; keeps a runaway
		// script from hammering the backend.
		limiter: rate.NewLimiter(rate.Limit(20), 10),
		logger:  logger,
	}
}

// Call performs one round trip. The body, when non-nil, is sent as JSON.
// On success it returns the raw response payload: JSON bytes for JSON
// responses, the plain text otherwise, nil for 204 / empty bodies. Any
// status in [400, 600) is a failure.
func (c *Client) Call(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.call(ctx, method, path, body, true)
}

// CallUnauthenticated is Call without the bearer header, for endpoints
// that are public by design (signup).
func (c *Client) CallUnauthenticated(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.call(ctx, method, path, body, false)
}

func (c *Client) call(ctx context.Context, method, path string, body any, withAuth bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		// An already-expired context surfaces here, before any I/O.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, &UnexpectedError{Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &UnexpectedError{Err: fmt.Errorf("encoding request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &UnexpectedError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if withAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api call", "method", method, "path", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnexpectedError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		c.logger.Debug("api call failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// classifyTransportError maps low-level request failures onto the
// client's taxonomy: timeouts and unreachable hosts are the two cases
// callers branch on, everything else is unexpected.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return &UnexpectedError{Err: err}
}

// decode unmarshals a JSON success payload into out. A payload that is
// not the expected JSON shape is an UnexpectedError, never a panic.
func decode(data []byte, out any) error {
	if len(data) == 0 {
		return &UnexpectedError{Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &UnexpectedError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
