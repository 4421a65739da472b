package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemory()
	if s.AccessToken() != "" || s.RefreshToken() != "" || s.User() != nil || s.HasAuth() {
		t.Fatal("fresh store not empty")
	}

	s.SetAccessToken("acc")
	s.SetRefreshToken("ref")
	s.SetUser(&domain.User{ID: "u1", Email: "a@b.com"})
	s.SetHasAuth(true)

	if s.AccessToken() != "acc" || s.RefreshToken() != "ref" {
		t.Errorf("tokens = %q/%q, want acc/ref", s.AccessToken(), s.RefreshToken())
	}
	if u := s.User(); u == nil || u.ID != "u1" || u.Email != "a@b.com" {
		t.Errorf("user = %+v, want u1 / a@b.com", u)
	}
	if !s.HasAuth() {
		t.Error("HasAuth() = false, want true")
	}

	s.Clear()
	if s.AccessToken() != "" || s.RefreshToken() != "" || s.User() != nil || s.HasAuth() {
		t.Error("Clear() left state behind")
	}
}

func TestOpenMissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if s.AccessToken() != "" || s.HasAuth() {
		t.Error("missing file should give an empty store")
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	s.SetAccessToken("acc")
	s.SetUser(&domain.User{ID: "u1"})
	s.SetHasAuth(true)

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if reopened.AccessToken() != "acc" {
		t.Errorf("AccessToken() = %q after reopen, want acc", reopened.AccessToken())
	}
	if u := reopened.User(); u == nil || u.ID != "u1" {
		t.Errorf("User() = %+v after reopen, want u1", u)
	}
	if !reopened.HasAuth() {
		t.Error("HasAuth() = false after reopen")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestCorruptSessionFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if s.AccessToken() != "" || s.HasAuth() {
		t.Error("corrupt file should yield an empty store")
	}

	// The store is still usable and persists new state.
	s.SetAccessToken("fresh")
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if reopened.AccessToken() != "fresh" {
		t.Errorf("AccessToken() = %q after recovery, want fresh", reopened.AccessToken())
	}
}

func TestSetUserNilRemovesRecord(t *testing.T) {
	s := NewMemory()
	s.SetUser(&domain.User{ID: "u1"})
	s.SetUser(nil)
	if s.User() != nil {
		t.Error("SetUser(nil) should remove the cached record")
	}
}
