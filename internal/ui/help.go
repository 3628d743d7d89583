package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp draws the centered key binding reference.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigate", [][2]string{
			{"j/k", "move selection"},
			{"g/G", "first / last book"},
		}},
		{"Books", [][2]string{
			{"a", "add book"},
			{"e/enter", "edit selected"},
			{"d", "delete selected"},
			{"f", "cycle status filter"},
		}},
		{"Data", [][2]string{
			{"r", "recommendations"},
			{"R", "refresh now"},
		}},
		{"Session", [][2]string{
			{"l", "log out"},
			{"T", "cycle theme"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render("Key bindings"))
	b.WriteString("\n")
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, kv := range section.keys {
			b.WriteString(styles.WarningText.Render(padRight(kv[0], 9)))
			b.WriteString(styles.Text.Render(kv[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
