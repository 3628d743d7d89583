package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) initRecsViewport() {
	m.recsViewport = viewport.New(60, 16)
}

// handleRecsKey processes keyboard input while the recommendations overlay
// is open.
func (m Model) handleRecsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Recs):
		// Closing discards the batch; reopening fetches a fresh one.
		m.overlay = overlayNone
		m.recs = nil
		m.recsBasis = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.recsViewport, cmd = m.recsViewport.Update(msg)
	return m, cmd
}

// updateRecsViewport rebuilds the overlay content from the loaded batch.
func (m *Model) updateRecsViewport() {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.recsBasis != nil {
		basis := fmt.Sprintf("Based on %d completed, %d reading",
			m.recsBasis.CompletedBooks, m.recsBasis.ReadingBooks)
		b.WriteString(styles.MutedText.Render(basis))
		b.WriteString("\n\n")
	}

	if len(m.recs) == 0 {
		b.WriteString(styles.MutedText.Render("No recommendations yet. Add and finish some books first."))
	}
	for i, rec := range m.recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Render(rec.Title))
		if rec.Author != "" {
			b.WriteString(styles.MutedText.Render(" by " + rec.Author))
		}
		b.WriteString("\n")
		if rec.Reason != "" {
			b.WriteString(styles.Text.Render(rec.Reason))
			b.WriteString("\n")
		}
	}

	m.recsViewport.SetContent(b.String())
	m.recsViewport.GotoTop()
}

// renderRecs draws the recommendations overlay.
func (m Model) renderRecs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Header.Render("Recommendations"))
	b.WriteString("\n\n")
	b.WriteString(m.recsViewport.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k scroll | esc close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
