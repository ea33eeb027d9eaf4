package domain

import (
	"reflect"
	"testing"
)

func TestBook(t *testing.T) {
	t.Run("Initial", func(t *testing.T) {
		tests := []struct {
			title string
			want  string
		}{
			{title: "dune", want: "D"},
			{title: "Émile", want: "É"},
			{title: "", want: "?"},
		}
		for _, tc := range tests {
			if got := (Book{Title: tc.title}).Initial(); got != tc.want {
				t.Errorf("Initial(%q) = %q, want %q", tc.title, got, tc.want)
			}
		}
	})

	t.Run("AvatarIndex", func(t *testing.T) {
		// 'T' is 84, 84 % 6 == 0
		if got := (Book{Title: "Test Book"}).AvatarIndex(6); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		// 'A' is 65, 65 % 6 == 5
		if got := (Book{Title: "Anathem"}).AvatarIndex(6); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
		if got := (Book{Title: "x"}).AvatarIndex(0); got != 0 {
			t.Errorf("expected 0 for empty palette, got %d", got)
		}
	})

	t.Run("Byline", func(t *testing.T) {
		if got := (Book{Author: "Le Guin", Year: 1969}).Byline(); got != "Le Guin · 1969" {
			t.Errorf("unexpected byline %q", got)
		}
		if got := (Book{Author: "Anonymous"}).Byline(); got != "Anonymous" {
			t.Errorf("unexpected byline %q", got)
		}
	})
}

func TestBookList(t *testing.T) {
	t.Run("WithBook Is Idempotent", func(t *testing.T) {
		list := BookList{ID: "1", BookIDs: []string{"1"}}
		got := list.WithBook("2").WithBook("2")
		if !reflect.DeepEqual(got.BookIDs, []string{"1", "2"}) {
			t.Errorf("expected [1 2], got %v", got.BookIDs)
		}
		if !reflect.DeepEqual(list.BookIDs, []string{"1"}) {
			t.Errorf("original list was modified: %v", list.BookIDs)
		}
	})

	t.Run("WithoutBook", func(t *testing.T) {
		list := BookList{BookIDs: []string{"1", "2", "3"}}
		got := list.WithoutBook("2")
		if !reflect.DeepEqual(got.BookIDs, []string{"1", "3"}) {
			t.Errorf("expected [1 3], got %v", got.BookIDs)
		}
		if len(list.BookIDs) != 3 {
			t.Errorf("original list was modified: %v", list.BookIDs)
		}
	})

	t.Run("Contains", func(t *testing.T) {
		list := BookList{BookIDs: []string{"a"}}
		if !list.Contains("a") || list.Contains("b") {
			t.Errorf("unexpected membership for %v", list.BookIDs)
		}
	})
}

func TestCountLabel(t *testing.T) {
	if got := CountLabel(1); got != "1 book" {
		t.Errorf("expected '1 book', got %q", got)
	}
	if got := CountLabel(0); got != "0 books" {
		t.Errorf("expected '0 books', got %q", got)
	}
}

func TestHasText(t *testing.T) {
	if HasText("   \t") {
		t.Error("whitespace-only input should count as empty")
	}
	if !HasText(" a ") {
		t.Error("expected padded text to count")
	}
}
