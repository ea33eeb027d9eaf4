package components

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
)

const defaultOpTimeout = 30 * time.Second

// Catalog is the part of the catalog service the dialogs drive
type Catalog interface {
	AddBook(ctx context.Context, title, author string, year int) (domain.Book, bool)
	CreateBookList(ctx context.Context, name, description string, bookIDs []string)
	UpdateBookList(ctx context.Context, id, name, description string)
	DeleteBookList(ctx context.Context, id string)
	AddBookToList(ctx context.Context, listID, bookID string)
	RemoveBookFromList(ctx context.Context, listID, bookID string)
	GetBooksForList(listID string) []domain.Book
}

// BookAddedMsg reports the outcome of a dialog's add-book request.
// Owner is the ID of the dialog that issued it.
type BookAddedMsg struct {
	Owner string
	Book  domain.Book
	OK    bool
}

// CatalogOpMsg signals that a fire-and-forget catalog operation finished.
// Failures surface through the service's error view.
type CatalogOpMsg struct {
	Op string
}

// runOp wraps a catalog call in a command with a deadline
func runOp(timeout time.Duration, op string, fn func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		fn(ctx)
		return CatalogOpMsg{Op: op}
	}
}

// addBookCmd creates a book and reports it back to the owning dialog
func addBookCmd(catalog Catalog, timeout time.Duration, owner, title, author string, year int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		book, ok := catalog.AddBook(ctx, title, author, year)
		return BookAddedMsg{Owner: owner, Book: book, OK: ok}
	}
}
