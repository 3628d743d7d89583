package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ainamardhia/book-tracking-app/internal/state"
	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

// authResultMsg carries the outcome of a login or signup request.
type authResultMsg struct {
	resp *tracker.TokenResponse
	err  error
}

// booksRefreshedMsg carries a fresh snapshot after a successful list fetch.
type booksRefreshedMsg struct {
	snapshot state.Snapshot
}

// booksFailedMsg reports a failed list fetch. The cache keeps its last
// good contents.
type booksFailedMsg struct {
	err error
}

// statsRefreshedMsg carries a fresh snapshot after a stats fetch.
type statsRefreshedMsg struct {
	snapshot state.Snapshot
}

// statsFailedMsg reports a failed stats fetch.
type statsFailedMsg struct {
	err error
}

// bookSavedMsg carries the outcome of a create or update request.
type bookSavedMsg struct {
	err error
}

// bookDeletedMsg carries the outcome of a delete request.
type bookDeletedMsg struct {
	err error
}

// recsLoadedMsg carries the outcome of a recommendations fetch.
type recsLoadedMsg struct {
	resp *tracker.RecommendationsResponse
	err  error
}

// loginCmd performs a login request.
func loginCmd(ctx context.Context, client tracker.API, creds tracker.Credentials) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Login(ctx, creds)
		return authResultMsg{resp: resp, err: err}
	}
}

// signupCmd performs a signup request.
func signupCmd(ctx context.Context, client tracker.API, req tracker.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Signup(ctx, req)
		return authResultMsg{resp: resp, err: err}
	}
}

// refreshBooksCmd fetches the book list for the given filter and replaces the
// cached list wholesale on success. On failure the cache is untouched.
func refreshBooksCmd(ctx context.Context, client tracker.API, store *state.Store, filter Filter) tea.Cmd {
	return func() tea.Msg {
		books, err := client.ListBooks(ctx, filter.Param())
		if err != nil {
			return booksFailedMsg{err: err}
		}
		store.SetBooks(books)
		return booksRefreshedMsg{snapshot: store.Snapshot()}
	}
}

// refreshStatsCmd fetches aggregate stats and stores them on success.
func refreshStatsCmd(ctx context.Context, client tracker.API, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.FetchStats(ctx)
		if err != nil {
			return statsFailedMsg{err: err}
		}
		store.SetStats(*stats)
		return statsRefreshedMsg{snapshot: store.Snapshot()}
	}
}

// saveBookCmd creates a new book, or replaces an existing one when id is
// non-empty.
func saveBookCmd(ctx context.Context, client tracker.API, id string, payload tracker.BookPayload) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == "" {
			_, err = client.CreateBook(ctx, payload)
		} else {
			_, err = client.UpdateBook(ctx, id, payload)
		}
		return bookSavedMsg{err: err}
	}
}

// deleteBookCmd deletes a book by id.
func deleteBookCmd(ctx context.Context, client tracker.API, id string) tea.Cmd {
	return func() tea.Msg {
		return bookDeletedMsg{err: client.DeleteBook(ctx, id)}
	}
}

// fetchRecsCmd fetches fresh recommendations. Opening the overlay always
// round-trips to the backend; nothing is cached between openings.
func fetchRecsCmd(ctx context.Context, client tracker.API) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.FetchRecommendations(ctx)
		return recsLoadedMsg{resp: resp, err: err}
	}
}
