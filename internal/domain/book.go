package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Book is a catalog entry. ID is assigned by the server.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	CreatedAt string `json:"createdAt"`
}

// Initial returns the upper-cased first letter of the title, used for card avatars
func (b Book) Initial() string {
	r, _ := utf8.DecodeRuneInString(b.Title)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// AvatarIndex picks a palette slot from the first character of the title
func (b Book) AvatarIndex(paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(b.Title)
	if r == utf8.RuneError {
		return 0
	}
	return int(r) % paletteSize
}

// Byline returns "Author · Year" for secondary display
func (b Book) Byline() string {
	if b.Year > 0 {
		return fmt.Sprintf("%s · %d", b.Author, b.Year)
	}
	return b.Author
}

// BookList is a named, ordered collection of book IDs.
// BookIDs may reference books that are not loaded locally.
type BookList struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BookIDs     []string `json:"bookIds"`
	BookCount   int      `json:"bookCount"`
	CreatedAt   string   `json:"createdAt"`
}

// Contains reports whether bookID is a member of the list
func (l BookList) Contains(bookID string) bool {
	for _, id := range l.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

// WithBook returns a copy of the list with bookID appended.
// The list is returned unchanged if the book is already a member.
func (l BookList) WithBook(bookID string) BookList {
	if l.Contains(bookID) {
		return l
	}
	ids := make([]string, 0, len(l.BookIDs)+1)
	ids = append(ids, l.BookIDs...)
	l.BookIDs = append(ids, bookID)
	return l
}

// WithoutBook returns a copy of the list with every occurrence of bookID removed
func (l BookList) WithoutBook(bookID string) BookList {
	ids := make([]string, 0, len(l.BookIDs))
	for _, id := range l.BookIDs {
		if id != bookID {
			ids = append(ids, id)
		}
	}
	l.BookIDs = ids
	return l
}

// CountLabel returns "1 book" / "N books"
func CountLabel(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}

// HasText reports whether s has content other than whitespace
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
