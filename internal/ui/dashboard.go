package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

const detailPaneWidth = 42

// renderDashboard draws the main screen: header, book table beside the
// detail pane, and the command bar.
func (m Model) renderDashboard() string {
	header := m.renderHeader()
	commandBar := m.renderCommandBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(commandBar)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	tableWidth := m.width - detailPaneWidth
	if tableWidth < 30 {
		tableWidth = m.width
	}

	table := m.renderTable(tableWidth, bodyHeight)
	body := table
	if tableWidth < m.width {
		detail := m.renderDetail(detailPaneWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, detail)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, commandBar)
}

// renderTable draws the filtered book list.
func (m Model) renderTable(width, height int) string {
	styles := m.theme.Styles()
	books := m.snapshot.Books

	inner := width - 4 // border and padding
	if inner < 20 {
		inner = 20
	}
	titleW := inner * 4 / 10
	authorW := inner * 3 / 10
	statusW := inner - titleW - authorW - 10

	rowFmt := fmt.Sprintf("%%-%ds  %%-%ds  %%-%ds  %%6s", titleW, authorW, statusW)

	var rows []string
	rows = append(rows, styles.MutedText.Render(
		fmt.Sprintf(rowFmt, "TITLE", "AUTHOR", "STATUS", "PROG")))

	if len(books) == 0 {
		rows = append(rows, "", styles.MutedText.Render(m.emptyListMessage()))
	}

	visible := height - 4 // border, header row
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selectedRow >= visible {
		start = m.selectedRow - visible + 1
	}
	end := start + visible
	if end > len(books) {
		end = len(books)
	}

	for i := start; i < end; i++ {
		book := books[i]
		line := fmt.Sprintf(rowFmt,
			truncate(book.Title, titleW),
			truncate(book.Author, authorW),
			truncate(tracker.StatusLabel(book.Status), statusW),
			progressCell(book))

		if i == m.selectedRow {
			rows = append(rows, styles.Selected.Render(line))
		} else {
			rows = append(rows, styles.StatusText(book.Status).Render(line))
		}
	}

	border := lipgloss.Color(m.theme.Border)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

// emptyListMessage distinguishes a truly empty library from an empty filter.
func (m Model) emptyListMessage() string {
	if m.filter == FilterAll {
		return "No books yet. Press a to add one."
	}
	return fmt.Sprintf("No books in %s. Press f to change the filter.", m.filter.Label())
}

// progressCell formats the progress column for a table row.
func progressCell(book tracker.Book) string {
	pct := book.ProgressPercent()
	if pct < 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", pct)
}
