package app

import (
	"context"
	"fmt"

	"github.com/ainamardhia/book-tracking-app/internal/config"
	"github.com/ainamardhia/book-tracking-app/internal/prefs"
	"github.com/ainamardhia/book-tracking-app/internal/session"
	"github.com/ainamardhia/book-tracking-app/internal/state"
	"github.com/ainamardhia/book-tracking-app/internal/tracker"
	"github.com/ainamardhia/book-tracking-app/internal/ui"
)

// Options configure the booktrack application.
type Options struct {
	ConfigPath  string // empty uses default ~/.config/booktrack/config.toml
	APIURL      string // overrides the configured backend URL when set
	Theme       string // overrides the saved theme preference when set
	SessionPath string // empty uses default ~/.config/booktrack/session.toml
	PrefsPath   string // empty uses default ~/.config/booktrack/prefs.toml
}

// Run boots the booktrack TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	apiURL := cfg.APIURL
	if opts.APIURL != "" {
		apiURL = opts.APIURL
	}

	client, err := tracker.NewClient(apiURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	themeName := userPrefs.Theme
	if opts.Theme != "" {
		themeName = opts.Theme
	}

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	sess := session.Load(sessionPath)

	uiOpts := ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       state.NewStore(),
		Session:     sess,
		SessionPath: sessionPath,
		ThemeName:   themeName,
		PrefsPath:   opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
