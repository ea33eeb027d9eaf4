package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
)

// cursor tracks selection and scroll offset within a pane
type cursor struct {
	index  int
	offset int
}

func (c *cursor) move(delta, n int) {
	c.index += delta
	c.clamp(n)
}

// clamp keeps the cursor inside [0, n)
func (c *cursor) clamp(n int) {
	if c.index >= n {
		c.index = n - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

// scroll keeps the cursor inside a window of height rows
func (c *cursor) scroll(height int) {
	if height <= 0 {
		return
	}
	if c.index < c.offset {
		c.offset = c.index
	}
	if c.index >= c.offset+height {
		c.offset = c.index - height + 1
	}
}

// handleNavigation moves the focused pane's cursor
func (m *Model) handleNavigation(msg tea.KeyMsg) {
	cur, n := &m.lists, len(m.catalog.BookLists().Get())
	if m.Focus == PaneBooks {
		cur, n = &m.books, len(m.visibleBooks())
	}

	switch {
	case key.Matches(msg, Keys.Up):
		cur.move(-1, n)
	case key.Matches(msg, Keys.Down):
		cur.move(1, n)
	case key.Matches(msg, Keys.Home):
		cur.index = 0
	case key.Matches(msg, Keys.End):
		cur.move(n, n)
	case key.Matches(msg, Keys.SwitchPane):
		if m.Focus == PaneLists {
			m.Focus = PaneBooks
		} else {
			m.Focus = PaneLists
		}
	}
}

func (m *Model) selectedList() (domain.BookList, bool) {
	lists := m.catalog.BookLists().Get()
	if m.lists.index < 0 || m.lists.index >= len(lists) {
		return domain.BookList{}, false
	}
	return lists[m.lists.index], true
}

func (m *Model) selectedBook() (domain.Book, bool) {
	books := m.visibleBooks()
	if m.books.index < 0 || m.books.index >= len(books) {
		return domain.Book{}, false
	}
	return books[m.books.index], true
}
