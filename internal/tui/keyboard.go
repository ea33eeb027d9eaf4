package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return nil
	}

	// A mounted dialog owns the keyboard
	if m.DialogOpen() {
		return m.routeToDialog(msg)
	}

	if m.typing {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true

	case key.Matches(msg, Keys.Escape):
		if m.query != "" {
			m.clearFilter()
		}

	case key.Matches(msg, Keys.Filter):
		m.startFilter()
		m.Focus = PaneBooks
		return textinput.Blink

	case key.Matches(msg, Keys.Reload):
		m.StatusMsg = ""
		return ReloadCatalogCmd(m.catalog, m.timeout)

	case key.Matches(msg, Keys.NewList):
		m.openCreateDialog()

	case key.Matches(msg, Keys.Edit):
		if m.Focus == PaneLists {
			if list, ok := m.selectedList(); ok {
				m.openEditDialog(list)
			}
		}

	case key.Matches(msg, Keys.DeleteBook):
		if m.Focus == PaneBooks {
			if book, ok := m.selectedBook(); ok {
				m.confirmDeleteBook(book)
			}
		}

	default:
		m.handleNavigation(msg)
	}
	return nil
}
