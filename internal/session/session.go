// Package session handles persistence of the authenticated session.
// The bearer token and user identity are stored together in
// ~/.config/booktrack/session.toml and restored on startup, so a user stays
// signed in across runs without re-entering credentials. The stored token is
// trusted as-is; it is not validated against the backend until the first
// authenticated request fails.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

// Session is the durable copy of the client's credentials and identity.
// Token and user fields are always written and cleared together.
type Session struct {
	Token     string `toml:"token"`
	UserID    string `toml:"user_id"`
	UserName  string `toml:"user_name"`
	UserEmail string `toml:"user_email"`
}

const defaultSessionPath = "~/.config/booktrack/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// FromToken builds a Session from an auth response.
func FromToken(resp *tracker.TokenResponse) Session {
	if resp == nil {
		return Session{}
	}
	return Session{
		Token:     resp.AccessToken,
		UserID:    resp.User.ID,
		UserName:  resp.User.Name,
		UserEmail: resp.User.Email,
	}
}

// User returns the stored identity in API form.
func (s Session) User() tracker.User {
	return tracker.User{ID: s.UserID, Name: s.UserName, Email: s.UserEmail}
}

// Authenticated reports whether both token and user identity are present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.UserID) != ""
}

// Load reads the persisted session. A missing or unreadable file yields an
// empty (logged-out) session rather than an error: corrupt local state must
// never block the login view.
func Load(path string) Session {
	resolved, err := resolvePath(path)
	if err != nil {
		return Session{}
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return Session{}
	}

	var s Session
	if err := toml.Unmarshal(raw, &s); err != nil {
		return Session{}
	}
	if !s.Authenticated() {
		// Half-written state counts as logged out.
		return Session{}
	}
	return s
}

// Save persists the session, creating directories as needed. The file is
// written 0600 since it holds the bearer credential.
func Save(path string, s Session) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-absent session is
// not an error, so logout stays idempotent.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
