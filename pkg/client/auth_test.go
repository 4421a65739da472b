package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

func TestLoginViaCookieFlag(t *testing.T) {
	// The login body carries only a message; authentication is signaled
	// through an auth cookie that /auth/has confirms.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds domain.Credentials
			json.NewDecoder(r.Body).Decode(&creds) //nolint:errcheck
			if creds.Email != "a@b.com" || creds.Password != "x" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "hasAuth", Value: "true"})
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"}) //nolint:errcheck
		case "/auth/has":
			if c, err := r.Cookie("hasAuth"); err != nil || c.Value != "true" {
				json.NewEncoder(w).Encode(map[string]bool{"hasAuth": false}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(map[string]bool{"hasAuth": true}) //nolint:errcheck
		case "/auth/me":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":1,"email":"a@b.com"}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	result, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if !result.Authenticated {
		t.Fatal("Authenticated = false, want true")
	}
	if result.Message != "ok" {
		t.Errorf("Message = %q, want %q", result.Message, "ok")
	}
	if result.User == nil || result.User.ID != "1" || result.User.Email != "a@b.com" {
		t.Errorf("User = %+v, want id 1 / a@b.com", result.User)
	}
	if !sess.HasAuth() {
		t.Error("session auth flag not set after successful login")
	}
	if u := sess.User(); u == nil || u.Email != "a@b.com" {
		t.Errorf("cached user = %+v, want a@b.com", u)
	}
	if !c.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
}

func TestLoginFailureWhenAuthCheckSaysNo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
		case "/auth/has":
			json.NewEncoder(w).Encode(map[string]bool{"hasAuth": false}) //nolint:errcheck
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	result, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "wrong"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if result.Authenticated {
		t.Error("Authenticated = true, want false")
	}
	if sess.HasAuth() {
		t.Error("session auth flag set after failed login")
	}
}

func TestLoginStoresBodyTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
				"message":      "welcome",
				"accessToken":  "acc-1",
				"refreshToken": "ref-1",
			})
		case "/auth/has":
			json.NewEncoder(w).Encode(map[string]bool{"hasAuth": true}) //nolint:errcheck
		case "/auth/me":
			json.NewEncoder(w).Encode(domain.User{ID: "u1", Email: "a@b.com"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	if _, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if sess.AccessToken() != "acc-1" || sess.RefreshToken() != "ref-1" {
		t.Errorf("tokens = %q/%q, want acc-1/ref-1", sess.AccessToken(), sess.RefreshToken())
	}
}

func TestRegisterStoresTokensAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"accessToken":  "acc-new",
			"refreshToken": "ref-new",
			"user":         domain.User{ID: "u9", Email: "new@b.com"},
		})
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	result, err := c.Register(context.Background(), domain.Registration{Email: "new@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if !result.Authenticated {
		t.Error("Authenticated = false, want true when tokens are returned")
	}
	if sess.AccessToken() != "acc-new" || sess.RefreshToken() != "ref-new" {
		t.Errorf("tokens = %q/%q, want acc-new/ref-new", sess.AccessToken(), sess.RefreshToken())
	}
	if u := sess.User(); u == nil || u.ID != "u9" {
		t.Errorf("cached user = %+v, want u9", u)
	}
}

func TestRefreshWithoutTokenMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	err := c.Refresh(context.Background())
	if !errors.Is(err, ErrNoRefreshToken) {
		t.Fatalf("Refresh() error = %v, want ErrNoRefreshToken", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server hit %d times, want 0", calls.Load())
	}
}

func TestFailedRefreshClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	sess.SetAccessToken("acc")
	sess.SetRefreshToken("ref")
	sess.SetUser(&domain.User{ID: "u1"})
	sess.SetHasAuth(true)

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if sess.AccessToken() != "" || sess.RefreshToken() != "" || sess.User() != nil || sess.HasAuth() {
		t.Error("failed refresh must clear the whole session")
	}
	if c.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after failed refresh")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		if body["refreshToken"] != "ref-old" {
			t.Errorf("refresh body = %v, want the stored refresh token", body)
		}
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"accessToken":  "acc-new",
			"refreshToken": "ref-new",
		})
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	sess.SetRefreshToken("ref-old")
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if sess.AccessToken() != "acc-new" || sess.RefreshToken() != "ref-new" {
		t.Errorf("tokens = %q/%q, want acc-new/ref-new", sess.AccessToken(), sess.RefreshToken())
	}
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond) // widen the overlap window
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "acc-new"}) //nolint:errcheck
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	sess.SetRefreshToken("ref")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Refresh(context.Background()); err != nil {
				t.Errorf("Refresh() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("refresh endpoint hit %d times, want 1 (shared in-flight refresh)", got)
	}
}

func TestLogoutClearsSessionEvenWhenServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	sess.SetAccessToken("acc")
	sess.SetRefreshToken("ref")
	sess.SetHasAuth(true)

	c.Logout(context.Background())

	if sess.AccessToken() != "" || sess.RefreshToken() != "" || sess.HasAuth() {
		t.Error("logout must clear the session regardless of the server outcome")
	}
}

func TestMeToleratesEnvelopes(t *testing.T) {
	payloads := []string{
		`{"id":"u1","email":"a@b.com"}`,
		`{"data":{"id":"u1","email":"a@b.com"}}`,
		`{"user":{"id":"u1","email":"a@b.com"}}`,
	}
	for _, payload := range payloads {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(payload)) //nolint:errcheck
		}))

		c, _ := newTestClient(srv.URL)
		user, err := c.Me(context.Background())
		srv.Close()
		if err != nil {
			t.Fatalf("Me() error for payload %s: %v", payload, err)
		}
		if user == nil || user.ID != "u1" || user.Email != "a@b.com" {
			t.Errorf("user = %+v for payload %s, want u1 / a@b.com", user, payload)
		}
	}
}

func TestUpdateMeRefreshesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/users/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var fields map[string]string
		json.NewDecoder(r.Body).Decode(&fields) //nolint:errcheck
		json.NewEncoder(w).Encode(domain.User{ID: "u1", Email: "a@b.com", FirstName: fields["firstName"]}) //nolint:errcheck
	}))
	defer srv.Close()

	c, sess := newTestClient(srv.URL)
	user, err := c.UpdateMe(context.Background(), map[string]string{"firstName": "Ada"})
	if err != nil {
		t.Fatalf("UpdateMe() error: %v", err)
	}
	if user.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want %q", user.FirstName, "Ada")
	}
	if cached := sess.User(); cached == nil || cached.FirstName != "Ada" {
		t.Errorf("cached user = %+v, want the patched record", cached)
	}
}
