package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// ErrNoRefreshToken is returned by Refresh when no refresh token is stored.
// No network call is made in that case.
var ErrNoRefreshToken = errors.New("no refresh token")

// tokenResponse is the shape auth endpoints use to deliver tokens.
type tokenResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

// LoginResult is what Login and Register resolve with after reconciling
// the API's auth signals.
type LoginResult struct {
	Message       string
	User          *domain.User
	Authenticated bool
}

// Register creates an account. When the response carries tokens they are
// stored and the session is marked authenticated immediately.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*LoginResult, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, "/auth/register", reg)
	if err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}

	var body tokenResponse
	_ = json.Unmarshal(raw, &body) //nolint:errcheck // tolerated; fields stay zero on odd shapes

	result := &LoginResult{Message: body.Message}
	if body.AccessToken != "" && body.RefreshToken != "" {
		c.session.SetAccessToken(body.AccessToken)
		c.session.SetRefreshToken(body.RefreshToken)
		if body.User != nil {
			c.session.SetUser(body.User)
		}
		c.session.SetHasAuth(true)
		result.User = body.User
		result.Authenticated = true
	}
	return result, nil
}

// Login posts credentials and reconciles the outcome. The API may return
// tokens in the body, or only set auth cookies and answer with a bare
// message; the /auth/has check is the single authoritative success signal.
// On success the user record is fetched from /auth/me and cached.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}

	var body tokenResponse
	_ = json.Unmarshal(raw, &body) //nolint:errcheck // tolerated; fields stay zero on odd shapes
	if body.AccessToken != "" {
		c.session.SetAccessToken(body.AccessToken)
	}
	if body.RefreshToken != "" {
		c.session.SetRefreshToken(body.RefreshToken)
	}

	if !c.CheckAuth(ctx) {
		msg := body.Message
		if msg == "" {
			msg = "Login failed"
		}
		return &LoginResult{Message: msg, Authenticated: false}, nil
	}

	result := &LoginResult{Message: body.Message, Authenticated: true}
	if result.Message == "" {
		result.Message = "Login successful"
	}
	// Tokens may live only in cookies; /auth/me both validates them and
	// yields the user record to cache.
	if user, meErr := c.Me(ctx); meErr == nil {
		result.User = user
	}
	c.session.SetHasAuth(true)
	return result, nil
}

// CheckAuth asks the server whether the current cookies/tokens authenticate.
// The endpoint answers {"hasAuth": bool}, a bare boolean, or "true"; any
// error counts as not authenticated.
func (c *Client) CheckAuth(ctx context.Context) bool {
	raw, err := c.doRequest(ctx, http.MethodGet, "/auth/has", nil)
	if err != nil {
		return false
	}
	var envelope struct {
		HasAuth *bool `json:"hasAuth"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.HasAuth != nil {
		return *envelope.HasAuth
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s == "true"
	}
	return false
}

// Me fetches the authenticated user from /auth/me and caches it in the
// session store.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	user, err := getObject[domain.User](ctx, c, "/auth/me", "user")
	if err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	if user != nil {
		c.session.SetUser(user)
	}
	return user, nil
}

// UpdateMe patches profile fields on /users/me and refreshes the cached
// user record with the server's answer.
func (c *Client) UpdateMe(ctx context.Context, fields map[string]string) (*domain.User, error) {
	raw, err := c.doRequest(ctx, http.MethodPatch, "/users/me", fields)
	if err != nil {
		return nil, fmt.Errorf("client.UpdateMe: %w", err)
	}
	user, ok := decodeObject[domain.User](raw, "user")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/users/me"}
	}
	if user != nil {
		c.session.SetUser(user)
	}
	return user, nil
}

// Refresh exchanges the refresh token for a fresh access token. Concurrent
// callers share a single in-flight refresh so a burst of 401s cannot fan
// out into redundant refresh calls. Without a refresh token it fails
// immediately and makes no network call; on any other failure the whole
// session is cleared rather than left with stale tokens.
func (c *Client) Refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		payload, _ := json.Marshal(map[string]string{"refreshToken": refreshToken}) //nolint:errcheck // static shape cannot fail

		// send, not doRequest: the refresh call itself must never
		// enter the 401-retry path.
		raw, sendErr := c.send(ctx, http.MethodPost, "/auth/refresh", payload)
		if sendErr != nil {
			c.session.Clear()
			return nil, sendErr
		}

		var body tokenResponse
		if json.Unmarshal(raw, &body) != nil || body.AccessToken == "" {
			c.session.Clear()
			return nil, &APIError{Kind: KindMalformed, Message: "refresh response carried no access token", Body: string(raw), Endpoint: "/auth/refresh"}
		}
		c.session.SetAccessToken(body.AccessToken)
		if body.RefreshToken != "" {
			c.session.SetRefreshToken(body.RefreshToken)
		}
		return nil, nil
	})
	return err
}

// Logout notifies the server best-effort and then unconditionally clears
// the local session. A failed server call is deliberately not surfaced:
// the local session is gone either way.
func (c *Client) Logout(ctx context.Context) {
	_, _ = c.doRequest(ctx, http.MethodPost, "/auth/logout", nil) //nolint:errcheck // best-effort notification
	c.session.Clear()
}
