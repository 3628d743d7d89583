package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

func TestLoad_MissingFileIsLoggedOut(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := Load("")
	if s.Authenticated() {
		t.Fatalf("session = %#v, want logged out", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")

	resp := &tracker.TokenResponse{
		AccessToken: "tok-abc",
		TokenType:   "bearer",
		User:        tracker.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}
	if err := Save(path, FromToken(resp)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Token file must not be world readable.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("file mode = %o, want 600", perm)
	}

	s := Load(path)
	if !s.Authenticated() {
		t.Fatalf("session = %#v, want authenticated", s)
	}
	if s.Token != "tok-abc" {
		t.Fatalf("Token = %q, want tok-abc", s.Token)
	}
	user := s.User()
	if user.ID != "u1" || user.Name != "Ada" || user.Email != "ada@example.com" {
		t.Fatalf("User = %#v, want restored identity", user)
	}
}

func TestLoad_CorruptOrPartialFileIsLoggedOut(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.toml")
	if err := os.WriteFile(corrupt, []byte("not toml {{{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if s := Load(corrupt); s.Authenticated() {
		t.Fatalf("session = %#v, want logged out for corrupt file", s)
	}

	// A token without a user (or vice versa) violates the set-together
	// invariant and is treated as logged out.
	partial := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(partial, []byte("token = \"tok\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if s := Load(partial); s.Authenticated() || s.Token != "" {
		t.Fatalf("session = %#v, want fully logged out for partial file", s)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")

	if err := Save(path, Session{Token: "t", UserID: "u"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present after Clear")
	}

	// Clearing again must succeed.
	if err := Clear(path); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestFromToken_NilResponse(t *testing.T) {
	if s := FromToken(nil); s.Authenticated() {
		t.Fatalf("session = %#v, want empty for nil response", s)
	}
}
