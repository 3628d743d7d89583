package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

type formMode int

const (
	formClosed formMode = iota
	formCreating
	formEditing
)

const (
	formFieldTitle = iota
	formFieldAuthor
	formFieldStatus
	formFieldPages
	formFieldCurrentPage
	formFieldRating
	formFieldNotes
	formFieldCount
)

// bookForm is the create/edit overlay. The status field is not a text input;
// it cycles through the known statuses with the left/right arrows.
type bookForm struct {
	mode    formMode
	editing *tracker.Book

	title       textinput.Model
	author      textinput.Model
	status      string
	pages       textinput.Model
	currentPage textinput.Model
	rating      textinput.Model
	notes       textinput.Model

	focus  int
	errMsg string
}

// digitsOnly rejects anything but ASCII digits, keeping the numeric fields
// coercible without per-keystroke error states.
func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.New("digits only")
		}
	}
	return nil
}

func newBookForm() bookForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 40

	author := textinput.New()
	author.Placeholder = "Author"
	author.CharLimit = 200
	author.Width = 40

	pages := textinput.New()
	pages.Placeholder = "Total pages"
	pages.CharLimit = 6
	pages.Width = 10
	pages.Validate = digitsOnly

	currentPage := textinput.New()
	currentPage.Placeholder = "Current page"
	currentPage.CharLimit = 6
	currentPage.Width = 10
	currentPage.Validate = digitsOnly

	rating := textinput.New()
	rating.Placeholder = "Rating 1-5"
	rating.CharLimit = 1
	rating.Width = 10
	rating.Validate = digitsOnly

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 2000
	notes.Width = 40

	return bookForm{
		title:       title,
		author:      author,
		status:      tracker.StatusWantToRead,
		pages:       pages,
		currentPage: currentPage,
		rating:      rating,
		notes:       notes,
	}
}

func (f *bookForm) input(i int) *textinput.Model {
	switch i {
	case formFieldTitle:
		return &f.title
	case formFieldAuthor:
		return &f.author
	case formFieldPages:
		return &f.pages
	case formFieldCurrentPage:
		return &f.currentPage
	case formFieldRating:
		return &f.rating
	case formFieldNotes:
		return &f.notes
	default:
		return nil
	}
}

// openCreate resets the form to blank values for a new book.
func (f *bookForm) openCreate() {
	*f = newBookForm()
	f.mode = formCreating
	f.setFocus(formFieldTitle)
}

// openEdit populates the form from an existing book.
func (f *bookForm) openEdit(book tracker.Book) {
	*f = newBookForm()
	f.mode = formEditing
	b := book
	f.editing = &b

	f.title.SetValue(book.Title)
	f.author.SetValue(book.Author)
	f.status = book.Status
	if book.Pages != nil {
		f.pages.SetValue(strconv.Itoa(*book.Pages))
	}
	f.currentPage.SetValue(strconv.Itoa(book.CurrentPage))
	if book.Rating != nil {
		f.rating.SetValue(strconv.Itoa(*book.Rating))
	}
	f.notes.SetValue(book.Notes)
	f.setFocus(formFieldTitle)
}

func (f *bookForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for n := 0; n < formFieldCount; n++ {
		in := f.input(n)
		if in == nil {
			continue
		}
		if n == i {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (f *bookForm) cycleFocus(delta int) tea.Cmd {
	i := ((f.focus+delta)%formFieldCount + formFieldCount) % formFieldCount
	return f.setFocus(i)
}

func (f *bookForm) cycleStatus(delta int) {
	for i, s := range tracker.Statuses {
		if s == f.status {
			n := len(tracker.Statuses)
			f.status = tracker.Statuses[((i+delta)%n+n)%n]
			return
		}
	}
	f.status = tracker.StatusWantToRead
}

// values captures the raw form contents for coercion.
func (f *bookForm) values() formValues {
	return formValues{
		Title:       f.title.Value(),
		Author:      f.author.Value(),
		Status:      f.status,
		Pages:       f.pages.Value(),
		CurrentPage: f.currentPage.Value(),
		Rating:      f.rating.Value(),
		Notes:       f.notes.Value(),
	}
}

// formValues is the raw, string-typed snapshot of the form.
type formValues struct {
	Title       string
	Author      string
	Status      string
	Pages       string
	CurrentPage string
	Rating      string
	Notes       string
}

// buildPayload coerces raw form values into a request payload. Blank pages
// and rating become null, a blank current page becomes zero.
func buildPayload(v formValues) (tracker.BookPayload, error) {
	var p tracker.BookPayload

	p.Title = strings.TrimSpace(v.Title)
	p.Author = strings.TrimSpace(v.Author)
	if p.Title == "" {
		return p, errors.New("title is required")
	}
	if p.Author == "" {
		return p, errors.New("author is required")
	}

	p.Status = v.Status
	if p.Status == "" {
		p.Status = tracker.StatusWantToRead
	}

	if s := strings.TrimSpace(v.Pages); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return p, errors.New("pages must be a non-negative number")
		}
		p.Pages = &n
	}

	if s := strings.TrimSpace(v.CurrentPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return p, errors.New("current page must be a non-negative number")
		}
		p.CurrentPage = n
	}

	if s := strings.TrimSpace(v.Rating); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 5 {
			return p, errors.New("rating must be between 1 and 5")
		}
		p.Rating = &n
	}

	p.Notes = v.Notes
	return p, nil
}

// handleFormKey processes keyboard input while the book form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = overlayNone
		m.form = newBookForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.cycleFocus(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.cycleFocus(-1)

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	}

	if m.form.focus == formFieldStatus {
		switch msg.String() {
		case "left":
			m.form.cycleStatus(-1)
			return m, nil
		case "right", " ":
			m.form.cycleStatus(1)
			return m, nil
		}
		return m, nil
	}

	in := m.form.input(m.form.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

// submitForm coerces the form and issues the create or update request.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	payload, err := buildPayload(m.form.values())
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}

	var id string
	if m.form.mode == formEditing && m.form.editing != nil {
		id = m.form.editing.ID
	}
	m.form.errMsg = ""
	return m, saveBookCmd(m.ctx, m.client, id, payload)
}

// renderForm draws the book form overlay.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	title := "Add book"
	if m.form.mode == formEditing {
		title = "Edit book"
	}

	statusLine := tracker.StatusLabel(m.form.status)
	if m.form.focus == formFieldStatus {
		statusLine = "< " + statusLine + " >"
	}
	statusLabel := "Status       "
	statusStyle := styles.MutedText
	if m.form.focus == formFieldStatus {
		statusStyle = styles.AccentText
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(title))
	b.WriteString("\n\n")
	b.WriteString("Title        " + m.form.title.View() + "\n")
	b.WriteString("Author       " + m.form.author.View() + "\n")
	b.WriteString(statusLabel + statusStyle.Render(statusLine) + "\n")
	b.WriteString("Pages        " + m.form.pages.View() + "\n")
	b.WriteString("Current page " + m.form.currentPage.View() + "\n")
	b.WriteString("Rating       " + m.form.rating.View() + "\n")
	b.WriteString("Notes        " + m.form.notes.View() + "\n\n")

	if m.form.errMsg != "" {
		b.WriteString(styles.DangerText.Render(truncate(m.form.errMsg, 56)))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("tab next | enter save | esc cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
