package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleConfirmKey processes keyboard input while the delete confirmation is
// open. Anything other than an explicit confirm leaves the book alone.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := m.confirmTarget
		m.overlay = overlayNone
		m.confirmTarget = nil
		if target == nil {
			return m, nil
		}
		return m, deleteBookCmd(m.ctx, m.client, target.ID)

	case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		m.confirmTarget = nil
		return m, nil
	}
	return m, nil
}

// renderConfirm draws the delete confirmation overlay.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()

	title := "this book"
	if m.confirmTarget != nil {
		title = m.confirmTarget.Title
	}

	var b strings.Builder
	b.WriteString(styles.WarningText.Render("Delete book?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncate(title, 48)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y delete | n cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
