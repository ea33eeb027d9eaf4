package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/components"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// View renders the dashboard with any mounted dialog on top
func (m *Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	if overlay := m.dialogView(); overlay != "" {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			overlay)
	}

	layout := m.calculateLayout()
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderListsPane(layout),
		m.renderBooksPane(layout),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFilterLine(),
		m.renderFooter(),
	)
}

func (m *Model) dialogView() string {
	switch {
	case m.confirm != nil:
		return m.confirm.View()
	case m.createDialog != nil:
		return m.createDialog.View()
	case m.editDialog != nil:
		return m.editDialog.View()
	}
	return ""
}

func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return styles.ActiveBorder
	}
	return styles.InactiveBorder
}

// renderListsPane renders list names with their book counts
func (m *Model) renderListsPane(layout paneLayout) string {
	lists := m.catalog.BookLists().Get()
	inner := layout.listsWidth - 2
	rows := layout.rows()
	m.lists.scroll(rows)

	lines := []string{styles.TitleStyle.Render(styles.Truncate("Lists", inner))}
	if len(lists) == 0 {
		lines = append(lines, styles.DimStyle.Render(" No lists yet. Press n to create one."))
	}

	end := min(m.lists.offset+rows, len(lists))
	for i := m.lists.offset; i < end; i++ {
		l := lists[i]
		count := domain.CountLabel(m.catalog.BookCount(l.ID))
		name := styles.Truncate(l.Name, inner-lipgloss.Width(count)-6)
		dim := styles.DimGray
		parts := []styles.RowPart{
			{Text: name},
			{Text: strings.Repeat(" ", max(inner-lipgloss.Width(name)-lipgloss.Width(count)-3, 1))},
			{Text: count, Foreground: &dim},
		}
		lines = append(lines, styles.RenderListRow(parts, i == m.lists.index && m.Focus == PaneLists, inner))
	}

	return paneStyle(m.Focus == PaneLists).
		Width(inner).
		Height(layout.height - 2).
		Render(strings.Join(lines, "\n"))
}

// renderBooksPane renders the (possibly filtered) books as cards
func (m *Model) renderBooksPane(layout paneLayout) string {
	books := m.visibleBooks()
	inner := layout.booksWidth - 2
	rows := layout.rows()
	m.books.scroll(rows)

	title := "Books"
	if m.query != "" {
		title = fmt.Sprintf("Books matching %q", m.query)
	}
	lines := []string{styles.TitleStyle.Render(styles.Truncate(title, inner))}
	if len(books) == 0 {
		msg := " No books in the catalog"
		if m.query != "" {
			msg = " No matches"
		}
		lines = append(lines, styles.DimStyle.Render(msg))
	}

	end := min(m.books.offset+rows, len(books))
	for i := m.books.offset; i < end; i++ {
		card := components.NewBookCard(books[i])
		card.Selected = i == m.books.index && m.Focus == PaneBooks
		lines = append(lines, card.View(inner))
	}

	return paneStyle(m.Focus == PaneBooks).
		Width(inner).
		Height(layout.height - 2).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFilterLine() string {
	if m.typing || m.query != "" {
		return m.filter.View()
	}
	return ""
}

// renderFooter renders a single-line footer: spinner or error on the left,
// help hint on the right
func (m *Model) renderFooter() string {
	var left string
	switch {
	case m.catalog.Loading().Get():
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading catalog...")
	case m.catalog.Error().Get() != "":
		left = styles.ErrorStyle.Render(m.catalog.Error().Get())
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m *Model) renderHelp() string {
	help := `
NAVIGATION                      LISTS & BOOKS
  j/k        Up/down               n      New list
  g/G        First/last            Enter  Edit list
  Tab/h/l    Switch pane           d      Delete book
                                   /      Filter books

IN DIALOGS                      OTHER
  Tab        Next field            r      Reload
  Ctrl+p     Pick books            q      Quit
  Ctrl+n     New book              ?      This help
  Ctrl+x     Remove book           Esc    Close / Cancel
  Ctrl+d     Delete list

Press esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
