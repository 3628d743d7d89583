package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ainamardhia/book-tracking-app/internal/session"
	"github.com/ainamardhia/book-tracking-app/internal/state"
	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

// fakeAPI records calls without touching the network.
type fakeAPI struct {
	token       string
	loginCalls  int
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	recsCalls   int
	lastUpdated string
	books       []tracker.Book
}

func (f *fakeAPI) Login(ctx context.Context, creds tracker.Credentials) (*tracker.TokenResponse, error) {
	f.loginCalls++
	return &tracker.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, nil
}

func (f *fakeAPI) Signup(ctx context.Context, req tracker.SignupRequest) (*tracker.TokenResponse, error) {
	return &tracker.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, nil
}

func (f *fakeAPI) ListBooks(ctx context.Context, status string) ([]tracker.Book, error) {
	f.listCalls++
	return f.books, nil
}

func (f *fakeAPI) CreateBook(ctx context.Context, payload tracker.BookPayload) (*tracker.Book, error) {
	f.createCalls++
	return &tracker.Book{ID: "new"}, nil
}

func (f *fakeAPI) UpdateBook(ctx context.Context, id string, payload tracker.BookPayload) (*tracker.Book, error) {
	f.updateCalls++
	f.lastUpdated = id
	return &tracker.Book{ID: id}, nil
}

func (f *fakeAPI) DeleteBook(ctx context.Context, id string) error {
	f.deleteCalls++
	return nil
}

func (f *fakeAPI) FetchStats(ctx context.Context) (*tracker.Stats, error) {
	return &tracker.Stats{}, nil
}

func (f *fakeAPI) FetchRecommendations(ctx context.Context) (*tracker.RecommendationsResponse, error) {
	f.recsCalls++
	return &tracker.RecommendationsResponse{Recommendations: []tracker.Recommendation{}}, nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

func testOptions(t *testing.T, api tracker.API, sess session.Session) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Client:      api,
		Store:       state.NewStore(),
		Session:     sess,
		SessionPath: filepath.Join(dir, "session.toml"),
		PrefsPath:   filepath.Join(dir, "prefs.toml"),
	}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func keyPress(m Model, s string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestRestoredSessionOpensDashboardWithoutAuthCall(t *testing.T) {
	api := &fakeAPI{}
	sess := session.Session{Token: "stored", UserID: "u1", UserName: "Ada"}

	m := New(testOptions(t, api, sess))

	if m.view != ViewDashboard {
		t.Fatalf("view = %d, want dashboard", m.view)
	}
	if api.token != "stored" {
		t.Errorf("client token = %q, want stored token", api.token)
	}
	if api.loginCalls != 0 {
		t.Errorf("login calls = %d, want 0", api.loginCalls)
	}
}

func TestFreshStartOpensLogin(t *testing.T) {
	m := New(testOptions(t, &fakeAPI{}, session.Session{}))
	if m.view != ViewLogin {
		t.Fatalf("view = %d, want login", m.view)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	api := &fakeAPI{}
	sess := session.Session{Token: "stored", UserID: "u1"}
	opts := testOptions(t, api, sess)

	if err := session.Save(opts.SessionPath, sess); err != nil {
		t.Fatal(err)
	}
	opts.Store.SetBooks([]tracker.Book{{ID: "b1", Title: "T", Author: "A"}})

	m := sized(New(opts))
	m.snapshot = opts.Store.Snapshot()
	m.errorMsg = "stale error"

	m, _ = keyPress(m, "l")

	if m.view != ViewLogin {
		t.Errorf("view = %d, want login", m.view)
	}
	if api.token != "" {
		t.Errorf("client token = %q, want cleared", api.token)
	}
	if len(opts.Store.Snapshot().Books) != 0 {
		t.Error("store should be cleared")
	}
	if m.errorMsg != "" {
		t.Errorf("error banner = %q, want cleared", m.errorMsg)
	}
	if _, err := os.Stat(opts.SessionPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("session file should be removed, stat err = %v", err)
	}
}

func TestFilterCyclesThroughAllStatuses(t *testing.T) {
	f := FilterAll
	want := []struct {
		param string
		label string
	}{
		{tracker.StatusWantToRead, "Want to read"},
		{tracker.StatusReading, "Reading"},
		{tracker.StatusCompleted, "Completed"},
		{"", "All"},
	}
	for _, w := range want {
		f = f.next()
		if f.Param() != w.param {
			t.Errorf("param = %q, want %q", f.Param(), w.param)
		}
		if f.Label() != w.label {
			t.Errorf("label = %q, want %q", f.Label(), w.label)
		}
	}
}

func TestFilterKeyTriggersRefresh(t *testing.T) {
	api := &fakeAPI{}
	m := sized(New(testOptions(t, api, session.Session{Token: "t", UserID: "u"})))

	m, cmd := keyPress(m, "f")
	if m.filter != FilterWantToRead {
		t.Errorf("filter = %d, want want-to-read", m.filter)
	}
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
}

func TestConfirmDenyDoesNotDelete(t *testing.T) {
	api := &fakeAPI{}
	opts := testOptions(t, api, session.Session{Token: "t", UserID: "u"})
	m := sized(New(opts))
	m.snapshot = state.Snapshot{Books: []tracker.Book{{ID: "b1", Title: "T", Author: "A"}}}

	m, _ = keyPress(m, "d")
	if m.overlay != overlayConfirm {
		t.Fatalf("overlay = %d, want confirm", m.overlay)
	}

	m, cmd := keyPress(m, "n")
	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, want none", m.overlay)
	}
	if cmd != nil {
		t.Error("deny should not produce a command")
	}
	if api.deleteCalls != 0 {
		t.Errorf("delete calls = %d, want 0", api.deleteCalls)
	}
}

func TestConfirmYesIssuesDelete(t *testing.T) {
	api := &fakeAPI{}
	m := sized(New(testOptions(t, api, session.Session{Token: "t", UserID: "u"})))
	m.snapshot = state.Snapshot{Books: []tracker.Book{{ID: "b1", Title: "T", Author: "A"}}}

	m, _ = keyPress(m, "d")
	m, cmd := keyPress(m, "y")
	if cmd == nil {
		t.Fatal("confirm should produce a delete command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("delete command returned no message")
	}
	if api.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", api.deleteCalls)
	}
}

func TestBooksFailureSetsBannerStatsFailureDoesNot(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))

	updated, _ := m.Update(statsFailedMsg{err: errors.New("stats down")})
	m = updated.(Model)
	if m.errorMsg != "" {
		t.Errorf("stats failure set banner %q", m.errorMsg)
	}

	updated, _ = m.Update(booksFailedMsg{err: errors.New("list down")})
	m = updated.(Model)
	if m.errorMsg != "list down" {
		t.Errorf("banner = %q, want list failure", m.errorMsg)
	}

	// The next user action dismisses the banner.
	m, _ = keyPress(m, "R")
	if m.errorMsg != "" {
		t.Errorf("banner = %q, want cleared after action", m.errorMsg)
	}
}

func TestBooksRefreshedPreservesSelectionByID(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))
	m.snapshot = state.Snapshot{Books: []tracker.Book{
		{ID: "a", Title: "A", Author: "x"},
		{ID: "b", Title: "B", Author: "x"},
		{ID: "c", Title: "C", Author: "x"},
	}}
	m.selectedRow = 1

	// "b" moves from index 1 to index 0; the selection must follow it.
	reordered := state.Snapshot{Books: []tracker.Book{
		{ID: "b", Title: "B", Author: "x"},
		{ID: "c", Title: "C", Author: "x"},
	}}
	updated, _ := m.Update(booksRefreshedMsg{snapshot: reordered})
	m = updated.(Model)

	if got := m.selectedBook(); got == nil || got.ID != "b" {
		t.Fatalf("selection moved off book b: %+v", got)
	}
	if m.selectedRow != 0 {
		t.Errorf("selectedRow = %d, want 0", m.selectedRow)
	}
}

func TestBooksRefreshedClampsWhenSelectedBookGone(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))
	m.snapshot = state.Snapshot{Books: []tracker.Book{
		{ID: "a", Title: "A", Author: "x"},
		{ID: "b", Title: "B", Author: "x"},
		{ID: "c", Title: "C", Author: "x"},
	}}
	m.selectedRow = 2

	updated, _ := m.Update(booksRefreshedMsg{snapshot: state.Snapshot{Books: []tracker.Book{
		{ID: "a", Title: "A", Author: "x"},
	}}})
	m = updated.(Model)

	if m.selectedRow != 0 {
		t.Errorf("selectedRow = %d, want clamped to 0", m.selectedRow)
	}
}

func TestRecsFailureKeepsOverlayClosed(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))

	updated, _ := m.Update(recsLoadedMsg{err: errors.New("ai down")})
	m = updated.(Model)

	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, want none", m.overlay)
	}
	if m.errorMsg != "ai down" {
		t.Errorf("banner = %q", m.errorMsg)
	}
}

func TestRecsSuccessOpensOverlayAndCloseDiscards(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))

	resp := &tracker.RecommendationsResponse{
		Recommendations: []tracker.Recommendation{{Title: "Dune", Author: "Frank Herbert"}},
		BasedOn:         &tracker.RecommendationBasis{CompletedBooks: 3},
	}
	updated, _ := m.Update(recsLoadedMsg{resp: resp})
	m = updated.(Model)

	if m.overlay != overlayRecs {
		t.Fatalf("overlay = %d, want recs", m.overlay)
	}
	if len(m.recs) != 1 {
		t.Fatalf("recs = %d, want 1", len(m.recs))
	}

	m, _ = keyPress(m, "esc")
	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, want none", m.overlay)
	}
	if m.recs != nil || m.recsBasis != nil {
		t.Error("closing should discard the batch")
	}
}

func TestBookSaveFailureKeepsFormOpen(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))
	m, _ = keyPress(m, "a")
	if m.overlay != overlayForm {
		t.Fatalf("overlay = %d, want form", m.overlay)
	}

	updated, _ := m.Update(bookSavedMsg{err: errors.New("Title is required")})
	m = updated.(Model)

	if m.overlay != overlayForm {
		t.Errorf("overlay = %d, form should stay open on failure", m.overlay)
	}
	if m.form.errMsg == "" {
		t.Error("form should show the failure")
	}
}

func TestBookSaveSuccessClosesFormAndRefreshes(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))
	m, _ = keyPress(m, "a")

	updated, cmd := m.Update(bookSavedMsg{})
	m = updated.(Model)

	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, want none", m.overlay)
	}
	if cmd == nil {
		t.Error("save should trigger a refresh")
	}
}

func TestEditWithoutSelectionIsIgnored(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})))

	m, _ = keyPress(m, "e")
	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, edit with empty list should do nothing", m.overlay)
	}
	m, _ = keyPress(m, "d")
	if m.overlay != overlayNone {
		t.Errorf("overlay = %d, delete with empty list should do nothing", m.overlay)
	}
}

func TestEditSubmitIssuesUpdateNotCreate(t *testing.T) {
	api := &fakeAPI{}
	m := sized(New(testOptions(t, api, session.Session{Token: "t", UserID: "u"})))
	m.snapshot = state.Snapshot{Books: []tracker.Book{
		{ID: "b7", Title: "Solaris", Author: "Stanislaw Lem", Status: tracker.StatusReading},
	}}

	m, _ = keyPress(m, "e")
	if m.overlay != overlayForm || m.form.mode != formEditing {
		t.Fatalf("overlay = %d mode = %d, want edit form", m.overlay, m.form.mode)
	}

	m, cmd := keyPress(m, "enter")
	if cmd == nil {
		t.Fatal("submit should produce a command")
	}
	cmd()

	if api.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1", api.updateCalls)
	}
	if api.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", api.createCalls)
	}
	if api.lastUpdated != "b7" {
		t.Errorf("updated id = %q, want b7", api.lastUpdated)
	}
}

func TestRecommendationsFetchOnEveryOpen(t *testing.T) {
	api := &fakeAPI{}
	m := sized(New(testOptions(t, api, session.Session{Token: "t", UserID: "u"})))

	for i := 0; i < 2; i++ {
		next, cmd := keyPress(m, "r")
		m = next
		if cmd == nil {
			t.Fatal("expected a fetch command")
		}
		updated, _ := m.Update(cmd())
		m = updated.(Model)
		m, _ = keyPress(m, "esc")
	}

	if api.recsCalls != 2 {
		t.Errorf("recommendation fetches = %d, want 2", api.recsCalls)
	}
}

func TestAuthFailureStaysOnAuthView(t *testing.T) {
	m := sized(New(testOptions(t, &fakeAPI{}, session.Session{})))
	if m.view != ViewLogin {
		t.Fatalf("view = %d, want login", m.view)
	}

	updated, _ := m.Update(authResultMsg{err: errors.New("Invalid credentials")})
	m = updated.(Model)

	if m.view != ViewLogin {
		t.Errorf("view = %d, a failed login must not change views", m.view)
	}
	if m.errorMsg != "Invalid credentials" {
		t.Errorf("error = %q, want backend message", m.errorMsg)
	}
	if m.auth.pending {
		t.Error("form should be editable again after failure")
	}
}

func TestUserLabelPrefersNameOverEmail(t *testing.T) {
	sess := session.Session{Token: "t", UserID: "u", UserEmail: "ada@example.com"}
	m := New(testOptions(t, &fakeAPI{}, sess))

	if got := m.userLabel(); got != "ada@example.com" {
		t.Errorf("label = %q, want email fallback", got)
	}

	m.sess.UserName = "Ada"
	if got := m.userLabel(); got != "Ada" {
		t.Errorf("label = %q, want name", got)
	}
}

func TestThemeCyclePersistsPreference(t *testing.T) {
	opts := testOptions(t, &fakeAPI{}, session.Session{Token: "t", UserID: "u"})
	m := sized(New(opts))
	before := m.theme.Name

	m, _ = keyPress(m, "T")
	if m.theme.Name == before {
		t.Errorf("theme did not change from %q", before)
	}
	if _, err := os.Stat(opts.PrefsPath); err != nil {
		t.Errorf("prefs file not written: %v", err)
	}
}
