// Package client wraps the storefront REST API. Every call funnels through
// a single chokepoint that attaches credentials, retries once after a 401
// by refreshing the access token, and normalizes success and error bodies
// into structured results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/vitrinedev/vitrine/internal/session"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20 // 1 MB

// Client is the Vitrine API client. All methods are safe for concurrent
// use; the token refresh triggered by a 401 is shared across in-flight
// requests so a burst of expired calls produces a single refresh.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	session       *session.Store
	refreshGroup  singleflight.Group
	retryAttempts int
	retryDelay    time.Duration
	onRetry       RetryNotify
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The cookie jar is
// preserved unless the replacement brings its own; the API relies on
// cookie-based session hints alongside bearer tokens.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar = c.httpClient.Jar
		}
		c.httpClient = hc
	}
}

// WithRetryDelay overrides the pause between catalog retry attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithRetryNotify installs a callback invoked before each catalog retry
// sleep, so the UI can show "attempt N of M".
func WithRetryNotify(fn RetryNotify) Option {
	return func(c *Client) { c.onRetry = fn }
}

// New creates an API client bound to the given session store.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // never fails with nil options
	c := &Client{
		baseURL: baseURL,
		session: sess,
		httpClient: &http.Client{
			Jar: jar,
		},
		retryAttempts: catalogAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the session store backing this client.
func (c *Client) Session() *session.Store { return c.session }

// IsAuthenticated is a pure read of the locally cached auth flag, not a
// live check. Callers needing certainty use CheckAuth.
func (c *Client) IsAuthenticated() bool { return c.session.HasAuth() }

// CurrentUser returns the cached user record, or nil when logged out.
func (c *Client) CurrentUser() *domain.User { return c.session.User() }

// doRequest sends one API request and returns the raw success payload.
// On a 401 with a refresh token present it refreshes once and replays the
// original request; the replay's result is final either way, so a request
// can never loop.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	raw, apiErr := c.send(ctx, method, path, payload)
	if apiErr == nil {
		return raw, nil
	}

	if apiErr.StatusCode == http.StatusUnauthorized && c.session.RefreshToken() != "" {
		if refreshErr := c.Refresh(ctx); refreshErr == nil {
			raw, retryErr := c.send(ctx, method, path, payload)
			if retryErr != nil {
				return nil, retryErr
			}
			return raw, nil
		}
		// Refresh failed; fall through with the original 401.
	}
	return nil, apiErr
}

// send performs a single HTTP exchange with no retry logic. The response
// body is read exactly once; parse problems surface as structured errors,
// never as a panic or a bare decode error.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, *APIError) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "create request: " + err.Error(), Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, &APIError{
			Kind:       KindMalformed,
			StatusCode: resp.StatusCode,
			StatusText: resp.Status,
			Message:    "failed to read server response",
			Endpoint:   path,
			Err:        readErr,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	msg := extractMessage(raw)
	if msg == "" {
		msg = cannedMessage(resp.StatusCode)
	}
	return nil, &APIError{
		Kind:       classifyStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		StatusText: resp.Status,
		Message:    msg,
		Body:       string(raw),
		Endpoint:   path,
	}
}

// do sends a request and decodes the success payload into out when out is
// non-nil. Empty bodies are accepted for callers that expect none.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			Kind:     KindMalformed,
			Message:  "failed to parse server response",
			Body:     string(raw),
			Endpoint: path,
			Err:      err,
		}
	}
	return nil
}

// extractMessage pulls a human message out of an error body, tolerating
// non-JSON and oddly shaped payloads.
func extractMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	// "error" may be a string or a nested {message: ...} object.
	var errStr string
	if json.Unmarshal(body.Error, &errStr) == nil && errStr != "" {
		return errStr
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body.Error, &nested) == nil {
		return nested.Message
	}
	return ""
}

// networkError classifies a transport failure, distinguishing "could not
// reach the server" from cancellation and generic failures.
func networkError(endpoint string, err error) *APIError {
	msg := "Network error or server unavailable"
	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case errors.Is(err, context.Canceled):
		msg = "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		msg = "Request timed out"
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		msg = "Unable to reach the API server. Check your internet connection or the API might be down."
	}
	return &APIError{Kind: KindNetwork, Message: msg, Endpoint: endpoint, Err: err}
}
