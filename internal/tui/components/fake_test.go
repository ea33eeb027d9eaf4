package components

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mmcdole/shelf/internal/domain"
)

// fakeCatalog records calls the dialogs make
type fakeCatalog struct {
	mu      sync.Mutex
	calls   []string
	members map[string][]domain.Book
	books   []domain.Book

	addOK   bool
	nextID  int
	created []string // ids passed to CreateBookList
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		members: make(map[string][]domain.Book),
		books:   mockBooks(),
		addOK:   true,
		nextID:  100,
	}
}

func (f *fakeCatalog) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeCatalog) AddBook(_ context.Context, title, author string, year int) (domain.Book, bool) {
	f.record("AddBook:%s:%s:%d", title, author, year)
	if !f.addOK {
		return domain.Book{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b := domain.Book{ID: fmt.Sprint(f.nextID), Title: title, Author: author, Year: year}
	f.books = append(f.books, b)
	return b, true
}

func (f *fakeCatalog) CreateBookList(_ context.Context, name, description string, bookIDs []string) {
	f.record("CreateBookList:%s:%s:%s", name, description, strings.Join(bookIDs, ","))
	f.mu.Lock()
	f.created = slices.Clone(bookIDs)
	f.mu.Unlock()
}

func (f *fakeCatalog) UpdateBookList(_ context.Context, id, name, description string) {
	f.record("UpdateBookList:%s:%s:%s", id, name, description)
}

func (f *fakeCatalog) DeleteBookList(_ context.Context, id string) {
	f.record("DeleteBookList:%s", id)
}

func (f *fakeCatalog) AddBookToList(_ context.Context, listID, bookID string) {
	f.record("AddBookToList:%s:%s", listID, bookID)
}

func (f *fakeCatalog) RemoveBookFromList(_ context.Context, listID, bookID string) {
	f.record("RemoveBookFromList:%s:%s", listID, bookID)
}

func (f *fakeCatalog) GetBooksForList(listID string) []domain.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.members[listID])
}

func mockBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: "2", Title: "Neuromancer", Author: "William Gibson", Year: 1984},
		{ID: "3", Title: "Hyperion", Author: "Dan Simmons", Year: 1989},
	}
}

func mockList() domain.BookList {
	return domain.BookList{ID: "L1", Name: "Sci-Fi", Description: "Classics", BookIDs: []string{"1"}, BookCount: 1}
}
