package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(detailPaneWidth-4, 10)
}

func (m *Model) resizeViewports() {
	h := m.height - 8
	if h < 4 {
		h = 4
	}
	m.detailViewport.Width = detailPaneWidth - 4
	m.detailViewport.Height = h

	rw := m.width - 12
	if rw > 72 {
		rw = 72
	}
	if rw < 30 {
		rw = 30
	}
	rh := m.height - 10
	if rh > 18 {
		rh = 18
	}
	if rh < 5 {
		rh = 5
	}
	m.recsViewport.Width = rw
	m.recsViewport.Height = rh
}

// updateDetailViewport rebuilds the detail pane from the selected book.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	book := m.selectedBook()
	if book == nil {
		m.detailViewport.SetContent("")
		return
	}

	styles := m.theme.Styles()
	w := m.detailViewport.Width

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(truncate(book.Title, w)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate("by "+book.Author, w)))
	b.WriteString("\n\n")

	b.WriteString(styles.StatusStyle(book.Status).Render(tracker.StatusLabel(book.Status)))
	b.WriteString("\n\n")

	b.WriteString(renderProgress(*book, w, styles))
	b.WriteString("\n")

	if book.Rating != nil {
		b.WriteString(styles.WarningText.Render(ratingStars(*book.Rating)))
		b.WriteString("\n")
	}

	if notes := strings.TrimSpace(book.Notes); notes != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(notes))
		b.WriteString("\n")
	}

	if !book.ParsedCreatedAt().IsZero() {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(
			"Added " + book.ParsedCreatedAt().Format("2006-01-02")))
	}
	if !book.ParsedUpdatedAt().IsZero() {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(
			"Updated " + book.ParsedUpdatedAt().Format("2006-01-02 15:04")))
	}

	m.detailViewport.SetContent(b.String())
	m.detailViewport.GotoTop()
}

// renderDetail draws the bordered detail pane.
func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()

	content := m.detailViewport.View()
	if m.selectedBook() == nil {
		content = styles.MutedText.Render("Nothing selected")
	}

	title := styles.MutedText.Render("DETAILS")
	body := title + "\n\n" + content

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 1).
		Render(body)
}

// renderProgress draws a page-count progress bar, or the raw page position
// when the total is unknown.
func renderProgress(book tracker.Book, width int, styles Styles) string {
	pct := book.ProgressPercent()
	if pct < 0 {
		if book.CurrentPage > 0 {
			return styles.MutedText.Render(fmt.Sprintf("On page %d", book.CurrentPage))
		}
		return styles.FaintText.Render("No page count")
	}

	barWidth := width - 7
	if barWidth < 8 {
		barWidth = 8
	}
	filled := barWidth * pct / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	label := fmt.Sprintf("%3d%%", pct)
	line := styles.SuccessText.Render(bar) + " " + styles.Text.Render(label)
	if book.Pages != nil {
		line += "\n" + styles.MutedText.Render(
			fmt.Sprintf("Page %d of %d", book.CurrentPage, *book.Pages))
	}
	return line
}

// ratingStars renders a 1-5 rating as stars.
func ratingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
