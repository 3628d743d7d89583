package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader draws the top bar: logo, signed-in user, stats strip, and the
// error banner when one is active.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Render("booktrack", styles.Logo)
	left += bg.Spaces(2)
	left += bg.Render(m.filter.Label(), styles.AccentText)

	right := ""
	if user := m.userLabel(); user != "" {
		right = bg.Render(truncate(user, 32), styles.MutedText)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	top := left + bg.Spaces(gap) + right

	lines := []string{top, m.renderStatsStrip(bg, styles)}
	if m.errorMsg != "" {
		banner := " " + truncate(m.errorMsg, m.width-2)
		lines = append(lines, styles.DangerText.Render(banner))
	}
	return strings.Join(lines, "\n")
}

// renderStatsStrip draws the aggregate stats line. When stats have never
// loaded the strip collapses to a placeholder.
func (m Model) renderStatsStrip(bg BgStyle, styles Styles) string {
	if !m.snapshot.HasStats {
		line := bg.Render("stats unavailable", styles.FaintText)
		return m.padLine(line, bg)
	}

	s := m.snapshot.Stats
	parts := []string{
		bg.Render(fmt.Sprintf("%d books", s.TotalBooks), styles.Text),
		bg.Render(fmt.Sprintf("%d completed", s.Completed), styles.SuccessText),
		bg.Render(fmt.Sprintf("%d reading", s.Reading), styles.InfoText),
		bg.Render(fmt.Sprintf("%d to read", s.WantToRead), styles.WarningText),
		bg.Render(fmt.Sprintf("%d pages read", s.TotalPagesRead), styles.MutedText),
	}
	if s.AverageRating > 0 {
		parts = append(parts,
			bg.Render(fmt.Sprintf("avg %.1f", s.AverageRating), styles.AccentText))
	}

	line := bg.Spaces(1) + bg.Join(parts, " | ")
	return m.padLine(line, bg)
}

// renderCommandBar draws the bottom key hint bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	hints := "a add | e edit | d delete | f filter | r recs | R refresh | l log out | ? help | q quit"
	line := bg.Spaces(1) + bg.Render(hints, styles.MutedText)
	return m.padLine(line, bg)
}

// padLine fills a line to the full terminal width with the bar background.
func (m Model) padLine(line string, bg BgStyle) string {
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += bg.Spaces(pad)
	}
	return line
}
