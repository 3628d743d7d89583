package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
	authFieldCount
)

// authForm holds the login/signup inputs. The name field only participates
// on the signup view; the login view skips over it.
type authForm struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	pending  bool
}

func newAuthForm() authForm {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 120
	name.Width = 32

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254
	email.Width = 32
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return authForm{
		name:     name,
		email:    email,
		password: password,
		focus:    authFieldEmail,
	}
}

func (f *authForm) input(i int) *textinput.Model {
	switch i {
	case authFieldName:
		return &f.name
	case authFieldEmail:
		return &f.email
	default:
		return &f.password
	}
}

// firstField returns the first focusable field for the view.
func firstField(v View) int {
	if v == ViewSignup {
		return authFieldName
	}
	return authFieldEmail
}

// setFocus moves focus to the given field and blurs the rest.
func (f *authForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for n := 0; n < authFieldCount; n++ {
		in := f.input(n)
		if n == i {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// focusCmd focuses the current field, for use when the view (re)appears.
func (f *authForm) focusCmd() tea.Cmd {
	return f.setFocus(f.focus)
}

// cycleFocus advances focus by delta, wrapping within the view's fields.
func (f *authForm) cycleFocus(v View, delta int) tea.Cmd {
	first := firstField(v)
	count := authFieldCount - first
	i := f.focus - first + delta
	i = ((i % count) + count) % count
	return f.setFocus(first + i)
}

// handleAuthKey processes keyboard input on the login and signup views.
// Single-letter shortcuts stay out of the way here: typed characters belong
// to the focused input.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchAuth):
		if m.view == ViewLogin {
			m.view = ViewSignup
		} else {
			m.view = ViewLogin
		}
		m.errorMsg = ""
		return m, m.auth.setFocus(firstField(m.view))

	case key.Matches(msg, m.keys.NextField):
		return m, m.auth.cycleFocus(m.view, 1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.auth.cycleFocus(m.view, -1)

	case key.Matches(msg, m.keys.Submit):
		return m.submitAuth()
	}

	// Everything else goes to the focused input.
	in := m.auth.input(m.auth.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

// submitAuth validates the form and issues the login or signup request.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.pending {
		return m, nil
	}

	email := strings.TrimSpace(m.auth.email.Value())
	password := m.auth.password.Value()
	if email == "" || password == "" {
		m.errorMsg = "email and password are required"
		return m, nil
	}

	if m.view == ViewSignup {
		name := strings.TrimSpace(m.auth.name.Value())
		if name == "" {
			m.errorMsg = "name is required"
			return m, nil
		}
		m.auth.pending = true
		m.errorMsg = ""
		return m, signupCmd(m.ctx, m.client, tracker.SignupRequest{
			Name:     name,
			Email:    email,
			Password: password,
		})
	}

	m.auth.pending = true
	m.errorMsg = ""
	return m, loginCmd(m.ctx, m.client, tracker.Credentials{
		Email:    email,
		Password: password,
	})
}

// renderAuth draws the centered login/signup card.
func (m Model) renderAuth() string {
	styles := m.theme.Styles()

	title := "Sign in"
	action := "ctrl+s sign up instead"
	if m.view == ViewSignup {
		title = "Create account"
		action = "ctrl+s sign in instead"
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("booktrack"))
	b.WriteString("\n")
	b.WriteString(styles.Header.Render(title))
	b.WriteString("\n\n")

	if m.view == ViewSignup {
		b.WriteString(m.auth.name.View())
		b.WriteString("\n")
	}
	b.WriteString(m.auth.email.View())
	b.WriteString("\n")
	b.WriteString(m.auth.password.View())
	b.WriteString("\n\n")

	if m.auth.pending {
		b.WriteString(styles.MutedText.Render("Working..."))
	} else if m.errorMsg != "" {
		b.WriteString(styles.DangerText.Render(truncate(m.errorMsg, 48)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("tab next field | enter submit | " + action))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
