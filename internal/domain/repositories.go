package domain

import "context"

// CatalogRepository provides network access to books and book lists.
// Implemented by the REST client; consumed by the synchronization service.
type CatalogRepository interface {
	// ListBooks returns every book known to the server
	ListBooks(ctx context.Context) ([]Book, error)

	// ListBookLists returns every book list known to the server
	ListBookLists(ctx context.Context) ([]BookList, error)

	// CreateBook creates a book and returns it with its server-assigned ID
	CreateBook(ctx context.Context, title, author string, year int) (Book, error)

	// DeleteBook removes a book
	DeleteBook(ctx context.Context, id string) error

	// CreateBookList creates a list with an initial membership
	CreateBookList(ctx context.Context, name, description string, bookIDs []string) (BookList, error)

	// UpdateBookList changes a list's name and description
	UpdateBookList(ctx context.Context, id, name, description string) (BookList, error)

	// DeleteBookList removes a list
	DeleteBookList(ctx context.Context, id string) error

	// AddBookToList records that bookID belongs to listID
	AddBookToList(ctx context.Context, listID, bookID string) error

	// RemoveBookFromList deletes the membership record
	RemoveBookFromList(ctx context.Context, listID, bookID string) error
}
