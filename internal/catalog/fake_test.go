package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mmcdole/shelf/internal/domain"
)

var errBoom = errors.New("boom")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepo is a scripted domain.CatalogRepository
type fakeRepo struct {
	mu    sync.Mutex
	calls []string

	books []domain.Book
	lists []domain.BookList

	// refetch replaces books for every ListBooks call after the first
	refetch []domain.Book
	listed  int

	createdBook domain.Book
	createdList domain.BookList
	updatedList domain.BookList

	fail map[string]error

	// onList runs inside ListBooks/ListBookLists before returning
	onList func(name string)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{fail: make(map[string]error)}
}

func (f *fakeRepo) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeRepo) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	if f.onList != nil {
		f.onList("books")
	}
	if err := f.record("ListBooks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	if f.listed > 1 && f.refetch != nil {
		return f.refetch, nil
	}
	return f.books, nil
}

func (f *fakeRepo) ListBookLists(ctx context.Context) ([]domain.BookList, error) {
	if f.onList != nil {
		f.onList("lists")
	}
	if err := f.record("ListBookLists"); err != nil {
		return nil, err
	}
	return f.lists, nil
}

func (f *fakeRepo) CreateBook(ctx context.Context, title, author string, year int) (domain.Book, error) {
	if err := f.record("CreateBook"); err != nil {
		return domain.Book{}, err
	}
	return f.createdBook, nil
}

func (f *fakeRepo) DeleteBook(ctx context.Context, id string) error {
	return f.record("DeleteBook:" + id)
}

func (f *fakeRepo) CreateBookList(ctx context.Context, name, description string, bookIDs []string) (domain.BookList, error) {
	if err := f.record("CreateBookList"); err != nil {
		return domain.BookList{}, err
	}
	return f.createdList, nil
}

func (f *fakeRepo) UpdateBookList(ctx context.Context, id, name, description string) (domain.BookList, error) {
	if err := f.record("UpdateBookList:" + id); err != nil {
		return domain.BookList{}, err
	}
	return f.updatedList, nil
}

func (f *fakeRepo) DeleteBookList(ctx context.Context, id string) error {
	return f.record("DeleteBookList:" + id)
}

func (f *fakeRepo) AddBookToList(ctx context.Context, listID, bookID string) error {
	return f.record("AddBookToList:" + listID + ":" + bookID)
}

func (f *fakeRepo) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	return f.record("RemoveBookFromList:" + listID + ":" + bookID)
}

func mockBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Test Book 1", Author: "Author 1", Year: 2024, CreatedAt: "2024-02-23"},
		{ID: "2", Title: "Test Book 2", Author: "Author 2", Year: 2023, CreatedAt: "2024-02-23"},
	}
}

func mockBookLists() []domain.BookList {
	return []domain.BookList{
		{ID: "1", Name: "Test List 1", Description: "Test Description", BookIDs: []string{"1"}, BookCount: 1, CreatedAt: "2024-02-23"},
	}
}
