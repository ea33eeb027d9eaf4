// Package catalog keeps the client's authoritative copy of books and book
// lists in sync with the catalog server.
//
// Every mutating operation issues its request through the repository and,
// only after the server acknowledges it, patches the local collections. A
// failure is logged, recorded as a fixed human-readable message in the Error
// view, and otherwise swallowed: local state is left exactly as it was.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/reactive"
	"golang.org/x/sync/errgroup"
)

// Fixed messages written to the Error view
const (
	MsgLoadBooksFailed      = "Failed to load books"
	MsgLoadListsFailed      = "Failed to load lists"
	MsgAddBookFailed        = "Failed to add book"
	MsgDeleteBookFailed     = "Failed to delete book"
	MsgCreateListFailed     = "Failed to create list"
	MsgUpdateListFailed     = "Failed to update list"
	MsgDeleteListFailed     = "Failed to delete list"
	MsgAddToListFailed      = "Failed to add book to list"
	MsgRemoveFromListFailed = "Failed to remove book from list"
)

// Service is the single source of truth for books and book lists
type Service struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	// mu serializes read-modify-write of the collections so that updates
	// touching both books and lists apply together
	mu sync.Mutex

	books     *reactive.Signal[[]domain.Book]
	bookLists *reactive.Signal[[]domain.BookList]
	loading   *reactive.Signal[bool]
	err       *reactive.Signal[string]
}

// NewService creates a service with empty collections. Call LoadAll (or use
// Open) to populate it.
func NewService(repo domain.CatalogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		logger:    logger,
		books:     reactive.NewSignal([]domain.Book{}),
		bookLists: reactive.NewSignal([]domain.BookList{}),
		loading:   reactive.NewSignal(false),
		err:       reactive.NewSignal(""),
	}
}

// Open creates a service and performs the initial load
func Open(ctx context.Context, repo domain.CatalogRepository, logger *slog.Logger) *Service {
	s := NewService(repo, logger)
	s.LoadAll(ctx)
	return s
}

// Books is the read-only view of the local book collection
func (s *Service) Books() reactive.View[[]domain.Book] { return s.books.AsView() }

// BookLists is the read-only view of the local list collection
func (s *Service) BookLists() reactive.View[[]domain.BookList] { return s.bookLists.AsView() }

// Loading reports whether the initial (or a re-) load is in flight
func (s *Service) Loading() reactive.View[bool] { return s.loading.AsView() }

// Error holds the most recent failure message; empty means no error
func (s *Service) Error() reactive.View[string] { return s.err.AsView() }

// OnChange registers fn to run after any of the four views changes
func (s *Service) OnChange(fn func()) (unsubscribe func()) {
	cancels := []func(){
		s.books.Subscribe(func([]domain.Book) { fn() }),
		s.bookLists.Subscribe(func([]domain.BookList) { fn() }),
		s.loading.Subscribe(func(bool) { fn() }),
		s.err.Subscribe(func(string) { fn() }),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// LoadAll fetches books and lists concurrently and replaces both collections
// once both requests have settled successfully.
func (s *Service) LoadAll(ctx context.Context) {
	s.loading.Set(true)
	s.err.Set("")

	var (
		books    []domain.Book
		lists    []domain.BookList
		booksErr error
		listsErr error
	)

	// Plain group (no derived context): a failing read must not cancel its
	// sibling, both settle before loading clears.
	var g errgroup.Group
	g.Go(func() error {
		books, booksErr = s.repo.ListBooks(ctx)
		return booksErr
	})
	g.Go(func() error {
		lists, listsErr = s.repo.ListBookLists(ctx)
		return listsErr
	})
	_ = g.Wait()

	switch {
	case booksErr != nil:
		s.logger.Error("failed to load books", "error", booksErr)
		s.err.Set(MsgLoadBooksFailed)
	case listsErr != nil:
		s.logger.Error("failed to load lists", "error", listsErr)
		s.err.Set(MsgLoadListsFailed)
	default:
		s.mu.Lock()
		s.books.Set(books)
		s.bookLists.Set(lists)
		s.mu.Unlock()
		s.logger.Debug("loaded catalog", "books", len(books), "lists", len(lists))
	}

	s.loading.Set(false)
}

// Reload re-runs LoadAll
func (s *Service) Reload(ctx context.Context) {
	s.LoadAll(ctx)
}

// fail records a fixed message after logging the underlying error
func (s *Service) fail(msg string, err error, attrs ...any) {
	s.logger.Error(msg, append([]any{"error", err}, attrs...)...)
	s.err.Set(msg)
}
