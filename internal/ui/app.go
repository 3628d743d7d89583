// Package ui implements the Bubble Tea terminal interface for booktrack.
package ui

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ainamardhia/book-tracking-app/internal/prefs"
	"github.com/ainamardhia/book-tracking-app/internal/session"
	"github.com/ainamardhia/book-tracking-app/internal/state"
	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

// View represents the current top-level view.
type View int

const (
	ViewLogin View = iota
	ViewSignup
	ViewDashboard
)

// overlay represents the modal layered over the dashboard. Overlays are
// orthogonal to the view: they only ever appear on top of ViewDashboard.
type overlay int

const (
	overlayNone overlay = iota
	overlayForm
	overlayConfirm
	overlayRecs
)

// Filter selects which subset of books is fetched and displayed.
type Filter int

const (
	FilterAll Filter = iota
	FilterWantToRead
	FilterReading
	FilterCompleted
)

// Param returns the status_filter query value, empty for the all view.
func (f Filter) Param() string {
	switch f {
	case FilterWantToRead:
		return tracker.StatusWantToRead
	case FilterReading:
		return tracker.StatusReading
	case FilterCompleted:
		return tracker.StatusCompleted
	default:
		return ""
	}
}

// Label returns the display label for the filter.
func (f Filter) Label() string {
	if param := f.Param(); param != "" {
		return tracker.StatusLabel(param)
	}
	return "All"
}

func (f Filter) next() Filter {
	switch f {
	case FilterAll:
		return FilterWantToRead
	case FilterWantToRead:
		return FilterReading
	case FilterReading:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      tracker.API
	Store       *state.Store
	Session     session.Session
	SessionPath string
	ThemeName   string
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	client      tracker.API
	store       *state.Store
	sessionPath string
	prefsPath   string
	keys        keyMap

	// UI state
	theme   Theme
	width   int
	height  int
	ready   bool
	view    View
	overlay overlay

	// Help overlay
	showHelp bool

	// Session and cache
	sess     session.Session
	snapshot state.Snapshot

	// Dashboard state
	filter      Filter
	selectedRow int
	errorMsg    string

	// Auth form
	auth authForm

	// Book form overlay
	form bookForm

	// Delete confirmation overlay
	confirmTarget *tracker.Book

	// Recommendations overlay
	recs         []tracker.Recommendation
	recsBasis    *tracker.RecommendationBasis
	recsViewport viewport.Model

	// Detail pane
	detailViewport viewport.Model
}

// New creates a new Bubble Tea model. When the restored session is
// authenticated the dashboard appears immediately, without any auth call.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		sessionPath: sessionPath,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		view:        ViewLogin,
		auth:        newAuthForm(),
		form:        newBookForm(),
	}

	if opts.Session.Authenticated() {
		m.sess = opts.Session
		if m.client != nil {
			m.client.SetToken(opts.Session.Token)
		}
		m.view = ViewDashboard
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.view == ViewDashboard {
		// Token became present on restore: fetch books, then stats.
		cmds = append(cmds, m.refreshSequence())
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// refreshSequence fetches the book list and then the stats, in that order.
// Refreshes stay sequential so the stats always reflect the list the user is
// looking at.
func (m Model) refreshSequence() tea.Cmd {
	return tea.Sequence(
		refreshBooksCmd(m.ctx, m.client, m.store, m.filter),
		refreshStatsCmd(m.ctx, m.client, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initRecsViewport()
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case booksRefreshedMsg:
		prevID := ""
		if prev := m.selectedBook(); prev != nil {
			prevID = prev.ID
		}
		m.snapshot = msg.snapshot
		m.clampSelection(prevID)
		m.updateDetailViewport()
		return m, nil

	case booksFailedMsg:
		m.errorMsg = msg.err.Error()
		return m, nil

	case statsRefreshedMsg:
		m.snapshot = msg.snapshot
		return m, nil

	case statsFailedMsg:
		// Stats outages degrade silently; the strip just disappears.
		log.Printf("stats refresh failed: %v", msg.err)
		return m, nil

	case bookSavedMsg:
		return m.handleBookSaved(msg)

	case bookDeletedMsg:
		return m.handleBookDeleted(msg)

	case recsLoadedMsg:
		return m.handleRecsLoaded(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.view {
	case ViewLogin, ViewSignup:
		return m.renderAuth()
	}

	if m.showHelp {
		return m.renderHelp()
	}
	switch m.overlay {
	case overlayForm:
		return m.renderForm()
	case overlayConfirm:
		return m.renderConfirm()
	case overlayRecs:
		return m.renderRecs()
	}
	return m.renderDashboard()
}

// handleKey routes keyboard input to the active view or overlay.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch m.view {
	case ViewLogin, ViewSignup:
		return m.handleAuthKey(msg)
	}

	switch m.overlay {
	case overlayForm:
		return m.handleFormKey(msg)
	case overlayConfirm:
		return m.handleConfirmKey(msg)
	case overlayRecs:
		return m.handleRecsKey(msg)
	}
	return m.handleDashboardKey(msg)
}

// handleDashboardKey processes keyboard input on the plain dashboard.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error banner survives until the next user action.
	dismissBanner := func() { m.errorMsg = "" }

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.AddBook):
		dismissBanner()
		m.form.openCreate()
		m.overlay = overlayForm
		return m, nil

	case key.Matches(msg, m.keys.EditBook):
		dismissBanner()
		book := m.selectedBook()
		if book == nil {
			return m, nil
		}
		m.form.openEdit(*book)
		m.overlay = overlayForm
		return m, nil

	case key.Matches(msg, m.keys.DeleteBook):
		dismissBanner()
		book := m.selectedBook()
		if book == nil {
			return m, nil
		}
		target := *book
		m.confirmTarget = &target
		m.overlay = overlayConfirm
		return m, nil

	case key.Matches(msg, m.keys.CycleFilter):
		dismissBanner()
		m.filter = m.filter.next()
		m.selectedRow = 0
		return m, m.refreshSequence()

	case key.Matches(msg, m.keys.Recs):
		dismissBanner()
		// The overlay opens only once the fetch succeeds.
		return m, fetchRecsCmd(m.ctx, m.client)

	case key.Matches(msg, m.keys.Refresh):
		dismissBanner()
		return m, m.refreshSequence()

	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.snapshot.Books); n > 0 {
			m.selectedRow = n - 1
		}
		m.updateDetailViewport()
		return m, nil
	}

	return m, nil
}

// logout clears the session from memory and durable storage, drops the data
// cache, and returns to the login view. Safe to call repeatedly.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.client != nil {
		m.client.ClearToken()
	}
	if m.store != nil {
		m.store.Clear()
	}
	if err := session.Clear(m.sessionPath); err != nil {
		log.Printf("clear session: %v", err)
	}

	m.sess = session.Session{}
	m.snapshot = state.Snapshot{}
	m.filter = FilterAll
	m.selectedRow = 0
	m.errorMsg = ""
	m.overlay = overlayNone
	m.confirmTarget = nil
	m.recs = nil
	m.recsBasis = nil
	m.form = newBookForm()
	m.auth = newAuthForm()
	m.view = ViewLogin
	return m, m.auth.focusCmd()
}

// handleAuthResult finalizes a login or signup attempt.
func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Stay on the auth view; the form remains editable.
		m.auth.pending = false
		m.errorMsg = msg.err.Error()
		return m, nil
	}

	sess := session.FromToken(msg.resp)
	if m.client != nil {
		m.client.SetToken(sess.Token)
	}
	if err := session.Save(m.sessionPath, sess); err != nil {
		// The in-memory session still wins; surface the storage problem.
		m.errorMsg = err.Error()
	} else {
		m.errorMsg = ""
	}

	m.sess = sess
	m.auth = newAuthForm()
	m.view = ViewDashboard
	m.filter = FilterAll
	m.selectedRow = 0
	return m, m.refreshSequence()
}

// handleBookSaved finalizes a create or update attempt.
func (m Model) handleBookSaved(msg bookSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Keep the form open so the user can retry or cancel.
		m.form.errMsg = msg.err.Error()
		return m, nil
	}
	m.overlay = overlayNone
	m.form = newBookForm()
	m.errorMsg = ""
	return m, m.refreshSequence()
}

// handleBookDeleted finalizes a delete attempt.
func (m Model) handleBookDeleted(msg bookDeletedMsg) (tea.Model, tea.Cmd) {
	m.overlay = overlayNone
	m.confirmTarget = nil
	if msg.err != nil {
		// No refresh happened, so the list stays as-is (stale).
		m.errorMsg = msg.err.Error()
		return m, nil
	}
	m.errorMsg = ""
	return m, m.refreshSequence()
}

// handleRecsLoaded opens the recommendations overlay on success.
func (m Model) handleRecsLoaded(msg recsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMsg = msg.err.Error()
		return m, nil
	}
	m.recs = msg.resp.Recommendations
	m.recsBasis = msg.resp.BasedOn
	m.overlay = overlayRecs
	m.updateRecsViewport()
	return m, nil
}

// selectedBook returns the currently highlighted book, or nil.
func (m *Model) selectedBook() *tracker.Book {
	books := m.snapshot.Books
	if m.selectedRow < 0 || m.selectedRow >= len(books) {
		return nil
	}
	return &books[m.selectedRow]
}

func (m *Model) moveSelection(delta int) {
	n := len(m.snapshot.Books)
	if n == 0 {
		return
	}
	m.selectedRow += delta
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	m.updateDetailViewport()
}

// clampSelection keeps the selection valid after the list is replaced.
// prevID is the ID selected in the outgoing list; when the same book is still
// present the selection follows it to its new index.
func (m *Model) clampSelection(prevID string) {
	books := m.snapshot.Books
	if len(books) == 0 {
		m.selectedRow = 0
		return
	}
	if prevID != "" {
		for i, b := range books {
			if b.ID == prevID {
				m.selectedRow = i
				return
			}
		}
	}
	if m.selectedRow >= len(books) {
		m.selectedRow = len(books) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// userLabel returns the display name for the signed-in user, falling back to
// the email when no name was set.
func (m Model) userLabel() string {
	user := m.sess.User()
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return user.Email
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Signal-driven shutdown is a clean exit.
		return nil
	}
	return err
}
