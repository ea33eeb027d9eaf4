package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

func TestConfirmDialog(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := NewConfirmDialog()
		if c.Title != "Confirm" || c.Message != "Are you sure?" || c.ConfirmLabel != "Delete" {
			t.Errorf("defaults = %q %q %q", c.Title, c.Message, c.ConfirmLabel)
		}
	})

	t.Run("Options Override", func(t *testing.T) {
		c := NewConfirmDialog(WithTitle("Remove"), WithMessage("Really?"), WithConfirmLabel("Yes"))
		view := c.View()
		for _, want := range []string{"Remove", "Really?", "Yes"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("Keys", func(t *testing.T) {
		tests := []struct {
			key                  string
			confirmed, cancelled int
		}{
			{"y", 1, 0},
			{"enter", 1, 0},
			{"n", 0, 1},
			{"esc", 0, 1},
			{"x", 0, 0},
		}
		for _, tt := range tests {
			c := NewConfirmDialog()
			var confirmed, cancelled counter
			c.Confirmed.Subscribe(confirmed.inc)
			c.Cancelled.Subscribe(cancelled.inc)
			c.HandleKeyMsg(keyMsg(tt.key))
			if confirmed.n != tt.confirmed || cancelled.n != tt.cancelled {
				t.Errorf("%s: confirmed=%d cancelled=%d", tt.key, confirmed.n, cancelled.n)
			}
		}
	})
}

func TestBookPicker(t *testing.T) {
	t.Run("Filter Narrows Candidates", func(t *testing.T) {
		p := NewBookPicker()
		p.SetBooks(mockBooks())
		p.setFilter("gibson")
		if p.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", p.Len())
		}
		if b, ok := p.Highlighted(); !ok || b.ID != "2" {
			t.Errorf("Highlighted() = %v, %v", b, ok)
		}
	})

	t.Run("Reset Clears Filter", func(t *testing.T) {
		p := NewBookPicker()
		p.SetBooks(mockBooks())
		p.setFilter("dune")
		p.Reset()
		if p.Len() != 3 {
			t.Errorf("Len() = %d after reset", p.Len())
		}
	})

	t.Run("Filter Mode Via Slash", func(t *testing.T) {
		p := NewBookPicker()
		p.SetBooks(mockBooks())
		p.HandleKeyMsg(keyMsg("/"))
		if !p.Filtering() {
			t.Fatal("expected filter mode")
		}
		for _, r := range "hyp" {
			p.HandleKeyMsg(keyMsg(string(r)))
		}
		if b, ok := p.Highlighted(); !ok || b.ID != "3" {
			t.Errorf("Highlighted() = %v, %v", b, ok)
		}
		p.HandleKeyMsg(keyMsg("esc"))
		if p.Filtering() || p.Len() != 3 {
			t.Error("expected esc to leave filter mode and clear it")
		}
	})

	t.Run("Enter Keeps Filter And Help Follows Mode", func(t *testing.T) {
		p := NewBookPicker()
		p.SetBooks(mockBooks())
		if !strings.Contains(p.Help(), "toggle") {
			t.Errorf("browse help = %q", p.Help())
		}

		p.HandleKeyMsg(keyMsg("/"))
		if help := p.Help(); !strings.Contains(help, "apply") || strings.Contains(help, "toggle") {
			t.Errorf("filter help = %q", help)
		}
		for _, r := range "dune" {
			p.HandleKeyMsg(keyMsg(string(r)))
		}
		p.HandleKeyMsg(keyMsg("enter"))
		if p.Filtering() || p.Len() != 1 {
			t.Errorf("Filtering() = %v, Len() = %d after enter", p.Filtering(), p.Len())
		}
	})

	t.Run("Empty View", func(t *testing.T) {
		p := NewBookPicker()
		if !strings.Contains(p.View(40, nil), "No books") {
			t.Error("expected empty placeholder")
		}
	})
}

func TestBookCard(t *testing.T) {
	book := domain.Book{ID: "1", Title: "dune", Author: "Frank Herbert", Year: 1965}
	card := NewBookCard(book)

	want := styles.AvatarPalette[int('d')%len(styles.AvatarPalette)]
	if card.AvatarColor() != want {
		t.Errorf("AvatarColor() = %v, want %v", card.AvatarColor(), want)
	}

	view := card.View(60)
	for _, s := range []string{"D", "dune", "Frank Herbert · 1965"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
	if strings.Contains(view, "✕") {
		t.Error("remove marker shown without ShowRemove")
	}
	card.ShowRemove = true
	if !strings.Contains(card.View(60), "✕") {
		t.Error("expected remove marker")
	}
}
