package catalog

import (
	"context"
	"slices"

	"github.com/mmcdole/shelf/internal/domain"
)

// GetBookByID looks up a loaded book
func (s *Service) GetBookByID(id string) (domain.Book, bool) {
	for _, b := range s.books.Get() {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}

// AddBook creates a book on the server and appends the returned record.
// The created book is returned so callers can use its server-assigned ID.
func (s *Service) AddBook(ctx context.Context, title, author string, year int) (domain.Book, bool) {
	book, err := s.repo.CreateBook(ctx, title, author, year)
	if err != nil {
		s.fail(MsgAddBookFailed, err, "title", title)
		return domain.Book{}, false
	}

	s.mu.Lock()
	s.books.Update(func(books []domain.Book) []domain.Book {
		return append(slices.Clone(books), book)
	})
	s.mu.Unlock()

	s.logger.Info("added book", "id", book.ID, "title", book.Title)
	return book, true
}

// DeleteBook removes a book and strips it from every list's membership
func (s *Service) DeleteBook(ctx context.Context, id string) {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		s.fail(MsgDeleteBookFailed, err, "bookID", id)
		return
	}

	s.mu.Lock()
	s.books.Update(func(books []domain.Book) []domain.Book {
		return slices.DeleteFunc(slices.Clone(books), func(b domain.Book) bool { return b.ID == id })
	})
	s.bookLists.Update(func(lists []domain.BookList) []domain.BookList {
		out := make([]domain.BookList, len(lists))
		for i, l := range lists {
			out[i] = l.WithoutBook(id)
		}
		return out
	})
	s.mu.Unlock()

	s.logger.Info("deleted book", "id", id)
}
