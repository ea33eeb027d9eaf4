package tui

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/adapter"
	"github.com/mmcdole/shelf/internal/api"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/server"
	"github.com/mmcdole/shelf/internal/store"
	"github.com/mmcdole/shelf/internal/tui/components"
)

type fixture struct {
	model *Model
	store *store.CatalogStore
	srv   *httptest.Server
	dune  domain.Book
}

// newFixture runs the dashboard against a real shelfd router over a
// memory store, loaded and sized
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := adapter.NullLogger()

	st, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	dune, _ := st.CreateBook("Dune", "Frank Herbert", 1965)
	st.CreateBook("Neuromancer", "William Gibson", 1984)
	st.CreateBookList("Favorites", "", []string{dune.ID})
	st.CreateBookList("To Read", "", nil)

	srv := httptest.NewServer(server.NewRouter(st, "/api", logger))
	t.Cleanup(srv.Close)

	svc := catalog.NewService(api.NewClient(srv.URL+"/api", nil, logger), logger)
	m := NewModel(svc, nil, WithTimeout(5*time.Second), WithLogger(logger))
	t.Cleanup(m.Teardown)

	m.Update(LoadCatalogCmd(svc, 5*time.Second)())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &fixture{model: m, store: st, srv: srv, dune: dune}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyPress(k))
	}
	return cmd
}

func TestDashboard(t *testing.T) {
	t.Run("Renders Loaded Catalog", func(t *testing.T) {
		f := newFixture(t)
		view := f.model.View()
		for _, want := range []string{"Favorites", "To Read", "1 book", "0 books", "Dune", "Neuromancer"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("Forwards Catalog Changes", func(t *testing.T) {
		f := newFixture(t)
		msg := ListenForChangesCmd(f.model.changes)()
		if _, ok := msg.(CatalogChangedMsg); !ok {
			t.Fatalf("got %T, want CatalogChangedMsg", msg)
		}
		if _, cmd := f.model.Update(msg); cmd == nil {
			t.Error("expected listener to be re-armed")
		}
	})

	t.Run("Shows Load Error", func(t *testing.T) {
		f := newFixture(t)
		f.srv.Close()
		cmd := press(f.model, "r")
		if cmd == nil {
			t.Fatal("expected reload command")
		}
		f.model.Update(cmd())
		if view := f.model.View(); !strings.Contains(view, catalog.MsgLoadBooksFailed) {
			t.Errorf("view missing error line:\n%s", view)
		}
	})

	t.Run("Create List", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "n")
		if !m.DialogOpen() || !m.Body().Has(components.DialogOpen) {
			t.Fatal("expected create dialog mounted")
		}

		press(m, "Weekend")
		cmd := press(m, "enter")
		if cmd == nil {
			t.Fatal("expected create command")
		}
		if m.DialogOpen() || m.Body().Has(components.DialogOpen) {
			t.Error("expected dialog unmounted after submit")
		}

		if !strings.Contains(m.renderFooter(), "Creating list...") {
			t.Errorf("footer = %q, want pending status", m.renderFooter())
		}

		msg := cmd()
		m.Update(CatalogChangedMsg{})
		lists := f.store.ListBookLists()
		if len(lists) != 3 || lists[2].Name != "Weekend" {
			t.Fatalf("store lists = %+v", lists)
		}
		if got, _ := m.selectedList(); got.Name != "Weekend" {
			t.Errorf("selected %q, want the new list", got.Name)
		}

		_, clearCmd := m.Update(msg)
		if clearCmd == nil {
			t.Fatal("expected status clear command")
		}
		footer := m.renderFooter()
		if strings.Contains(footer, "Creating list...") || !strings.Contains(footer, "Created list") {
			t.Errorf("footer = %q, want created status", footer)
		}
		m.Update(ClearStatusMsg{})
		if m.StatusMsg != "" {
			t.Errorf("StatusMsg = %q after clear", m.StatusMsg)
		}
	})

	t.Run("Create List Failure", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "n")
		press(m, "Weekend")
		cmd := press(m, "enter")
		f.srv.Close()

		m.Update(cmd())
		if m.followLists != -1 {
			t.Errorf("followLists = %d, want disarmed", m.followLists)
		}
		footer := m.renderFooter()
		if strings.Contains(footer, "Creating list...") {
			t.Errorf("footer still pending: %q", footer)
		}
		if !strings.Contains(footer, catalog.MsgCreateListFailed) {
			t.Errorf("footer = %q, want create error", footer)
		}
		if got, _ := m.selectedList(); got.Name != "Favorites" {
			t.Errorf("cursor moved to %q", got.Name)
		}
	})

	t.Run("Edit List Opens And Closes", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "enter")
		if m.editDialog == nil {
			t.Fatal("expected edit dialog")
		}
		if m.editDialog.ListName() != "Favorites" {
			t.Errorf("ListName() = %q", m.editDialog.ListName())
		}
		press(m, "esc")
		if m.DialogOpen() || m.Body().Has(components.DialogOpen) {
			t.Error("expected dialog unmounted")
		}
	})

	t.Run("Dialog Owns Scrolling Keys", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "enter", "j", "j")
		if m.lists.index != 0 {
			t.Errorf("dashboard cursor moved to %d while dialog open", m.lists.index)
		}
		press(m, "esc", "j")
		if m.lists.index != 1 {
			t.Errorf("cursor = %d after close, want 1", m.lists.index)
		}
	})

	t.Run("Delete Book Behind Confirm", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "tab", "d")
		if m.confirm == nil || !m.Body().Has(components.DialogOpen) {
			t.Fatal("expected confirmation")
		}
		cmd := press(m, "y")
		if cmd == nil {
			t.Fatal("expected delete command")
		}
		if m.DialogOpen() || m.Body().Has(components.DialogOpen) {
			t.Error("expected confirmation unmounted")
		}
		cmd()

		if _, err := f.store.GetBook(f.dune.ID); err == nil {
			t.Error("book still stored")
		}
		if n := len(m.catalog.Books().Get()); n != 1 {
			t.Errorf("%d books loaded, want 1", n)
		}
		if n := m.catalog.BookCount(f.store.ListBookLists()[0].ID); n != 0 {
			t.Errorf("list still counts %d books", n)
		}
	})

	t.Run("Cancel Delete Book", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "tab", "d")
		if cmd := press(m, "n"); cmd != nil {
			t.Error("expected no command on cancel")
		}
		if m.DialogOpen() {
			t.Error("expected confirmation unmounted")
		}
		if len(f.store.ListBooks()) != 2 {
			t.Error("book deleted despite cancel")
		}
	})

	t.Run("Filter Books", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "/")
		press(m, "gibson")
		books := m.visibleBooks()
		if len(books) != 1 || books[0].Title != "Neuromancer" {
			t.Fatalf("visibleBooks() = %v", books)
		}
		press(m, "enter")
		if m.typing {
			t.Error("expected enter to leave filter typing")
		}
		press(m, "esc")
		if len(m.visibleBooks()) != 2 {
			t.Error("expected esc to clear filter")
		}
	})

	t.Run("Teardown Releases Marker", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "n")
		m.Teardown()
		m.Teardown()
		if m.Body().Has(components.DialogOpen) {
			t.Error("marker survived teardown")
		}
	})

	t.Run("Help And Quit", func(t *testing.T) {
		f := newFixture(t)
		m := f.model

		press(m, "?")
		if !m.ShowHelp {
			t.Fatal("expected help")
		}
		press(m, "esc")
		if m.ShowHelp {
			t.Error("expected help closed")
		}
		cmd := press(m, "q")
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestChangeObserver(t *testing.T) {
	ch := make(chan struct{}, 1)
	obs := NewChangeObserver(ch)
	obs.Notify()
	obs.Notify() // coalesced, must not block

	if len(ch) != 1 {
		t.Errorf("buffered %d notifications, want 1", len(ch))
	}
}

func TestCursor(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta, n int
		want     int
	}{
		{"Moves Down", 0, 1, 3, 1},
		{"Stops At End", 2, 1, 3, 2},
		{"Stops At Start", 0, -1, 3, 0},
		{"Empty Pane", 0, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor{index: tt.start}
			c.move(tt.delta, tt.n)
			if c.index != tt.want {
				t.Errorf("index = %d, want %d", c.index, tt.want)
			}
		})
	}
}
