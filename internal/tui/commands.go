package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/tui/components"
)

// Command factories for async operations

// LoadCatalogCmd performs the initial load
func LoadCatalogCmd(svc Catalog, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.LoadAll(ctx)
		return CatalogLoadedMsg{}
	}
}

// ReloadCatalogCmd re-fetches books and lists
func ReloadCatalogCmd(svc Catalog, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.Reload(ctx)
		return CatalogLoadedMsg{}
	}
}

// DeleteBookCmd removes a book from the catalog
func DeleteBookCmd(svc Catalog, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		svc.DeleteBook(ctx, id)
		return components.CatalogOpMsg{Op: "delete-book"}
	}
}

// ListenForChangesCmd waits for the next catalog change notification
func ListenForChangesCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return CatalogChangedMsg{}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
