package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

func newFilterInput() textinput.Model {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.PromptStyle = styles.FilterPromptStyle
	fi.Placeholder = "filter books"
	fi.CharLimit = 100
	return fi
}

// visibleBooks is the books pane content: every book, or the ranked
// matches for the active filter
func (m *Model) visibleBooks() []domain.Book {
	if m.query == "" {
		return m.catalog.Books().Get()
	}
	return m.catalog.SearchBooks(m.query)
}

func (m *Model) startFilter() {
	m.typing = true
	m.filter.Focus()
}

func (m *Model) clearFilter() {
	m.typing = false
	m.query = ""
	m.filter.SetValue("")
	m.filter.Blur()
	m.books = cursor{}
}

// handleFilterKey edits the filter; enter keeps it, esc drops it
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.clearFilter()
		return nil
	case msg.Type == tea.KeyEnter:
		m.typing = false
		m.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if q := m.filter.Value(); q != m.query {
		m.query = q
		m.books = cursor{}
	}
	return cmd
}
