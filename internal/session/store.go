// Package session holds the client-side authentication state: access and
// refresh tokens, the cached user record, and the auth flag. State lives in
// a small key/value map persisted as JSON under the user's home directory,
// the terminal equivalent of browser local storage.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// Fixed storage keys. These match the upstream web client's storage layout
// so the two stay diffable.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyUser         = "user"
	keyHasAuth      = "hasAuth"
)

// Store is the process-wide session state. A Store is safe for use from
// multiple goroutines; Bubbletea commands run concurrently with the UI loop.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	path   string // empty for memory-only stores
}

// NewMemory returns a store that never touches disk. Used in tests and as
// a fallback when no home directory is available.
func NewMemory() *Store {
	return &Store{values: make(map[string]string)}
}

// DefaultPath returns ~/.vitrine/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vitrine", "session.json"), nil
}

// Open loads the session file at path, returning an empty store when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{values: make(map[string]string), path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		// A corrupt session file is discarded, not fatal: the user just
		// has to log in again.
		s.values = make(map[string]string)
	}
	return s, nil
}

// flush writes the current state to disk. Best-effort: persistence failures
// leave the in-memory session intact, matching local-storage semantics.
func (s *Store) flush() {
	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0600)
}

// AccessToken returns the current access token, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[keyAccessToken]
}

// RefreshToken returns the current refresh token, or "".
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[keyRefreshToken]
}

// SetAccessToken replaces the access token.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[keyAccessToken] = token
	s.flush()
}

// SetRefreshToken replaces the refresh token.
func (s *Store) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[keyRefreshToken] = token
	s.flush()
}

// User returns the cached user record, or nil when none is stored.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[keyUser]
	if !ok || raw == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// SetUser caches the user record. A nil user removes the cached record.
func (s *Store) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		delete(s.values, keyUser)
	} else {
		data, err := json.Marshal(u)
		if err != nil {
			return
		}
		s.values[keyUser] = string(data)
	}
	s.flush()
}

// HasAuth is a pure read of the locally cached auth flag. It does not talk
// to the server; callers needing certainty must hit /auth/has themselves.
func (s *Store) HasAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[keyHasAuth] == "true"
}

// SetHasAuth records the auth flag.
func (s *Store) SetHasAuth(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.values[keyHasAuth] = "true"
	} else {
		delete(s.values, keyHasAuth)
	}
	s.flush()
}

// Clear wipes every stored key: tokens, cached user and the auth flag.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.flush()
}
