package catalog

import (
	"context"
	"slices"

	"github.com/mmcdole/shelf/internal/domain"
)

// GetBookListByID looks up a loaded list
func (s *Service) GetBookListByID(id string) (domain.BookList, bool) {
	for _, l := range s.bookLists.Get() {
		if l.ID == id {
			return l, true
		}
	}
	return domain.BookList{}, false
}

// GetBooksForList resolves a list's book IDs against the loaded books, in
// list order. IDs without a loaded book are skipped.
func (s *Service) GetBooksForList(listID string) []domain.Book {
	list, ok := s.GetBookListByID(listID)
	if !ok {
		return []domain.Book{}
	}
	books := make([]domain.Book, 0, len(list.BookIDs))
	for _, id := range list.BookIDs {
		if b, ok := s.GetBookByID(id); ok {
			books = append(books, b)
		}
	}
	return books
}

// GetBooksNotInList returns the loaded books that are not members of the list.
// Every book is returned when the list is unknown.
func (s *Service) GetBooksNotInList(listID string) []domain.Book {
	all := s.books.Get()
	list, ok := s.GetBookListByID(listID)
	if !ok {
		return all
	}
	out := make([]domain.Book, 0, len(all))
	for _, b := range all {
		if !list.Contains(b.ID) {
			out = append(out, b)
		}
	}
	return out
}

// BookCount is the number of loaded books in a list
func (s *Service) BookCount(listID string) int {
	return len(s.GetBooksForList(listID))
}

// CreateBookList creates a list with an initial membership
func (s *Service) CreateBookList(ctx context.Context, name, description string, bookIDs []string) {
	list, err := s.repo.CreateBookList(ctx, name, description, bookIDs)
	if err != nil {
		s.fail(MsgCreateListFailed, err, "name", name)
		return
	}

	s.mu.Lock()
	s.bookLists.Update(func(lists []domain.BookList) []domain.BookList {
		return append(slices.Clone(lists), list)
	})
	s.mu.Unlock()

	s.logger.Info("created list", "id", list.ID, "name", list.Name, "books", len(list.BookIDs))
}

// UpdateBookList renames a list and replaces the local entry with the server's copy
func (s *Service) UpdateBookList(ctx context.Context, id, name, description string) {
	updated, err := s.repo.UpdateBookList(ctx, id, name, description)
	if err != nil {
		s.fail(MsgUpdateListFailed, err, "listID", id)
		return
	}

	s.mu.Lock()
	s.patchList(id, func(domain.BookList) domain.BookList { return updated })
	s.mu.Unlock()

	s.logger.Info("updated list", "id", id, "name", name)
}

// DeleteBookList deletes a list, then re-fetches books before applying both
// changes locally. The re-fetch starts only after the delete succeeds.
func (s *Service) DeleteBookList(ctx context.Context, id string) {
	if err := s.repo.DeleteBookList(ctx, id); err != nil {
		s.fail(MsgDeleteListFailed, err, "listID", id)
		return
	}
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		s.fail(MsgDeleteListFailed, err, "listID", id, "step", "refetch")
		return
	}

	s.mu.Lock()
	s.bookLists.Update(func(lists []domain.BookList) []domain.BookList {
		return slices.DeleteFunc(slices.Clone(lists), func(l domain.BookList) bool { return l.ID == id })
	})
	s.books.Set(books)
	s.mu.Unlock()

	s.logger.Info("deleted list", "id", id)
}

// AddBookToList records membership and appends the book ID locally if absent
func (s *Service) AddBookToList(ctx context.Context, listID, bookID string) {
	if err := s.repo.AddBookToList(ctx, listID, bookID); err != nil {
		s.fail(MsgAddToListFailed, err, "listID", listID, "bookID", bookID)
		return
	}

	s.mu.Lock()
	s.patchList(listID, func(l domain.BookList) domain.BookList { return l.WithBook(bookID) })
	s.mu.Unlock()

	s.logger.Info("added book to list", "listID", listID, "bookID", bookID)
}

// RemoveBookFromList deletes the membership, re-fetches books, then strips the
// book ID from the list and replaces the book collection.
func (s *Service) RemoveBookFromList(ctx context.Context, listID, bookID string) {
	if err := s.repo.RemoveBookFromList(ctx, listID, bookID); err != nil {
		s.fail(MsgRemoveFromListFailed, err, "listID", listID, "bookID", bookID)
		return
	}
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		s.fail(MsgRemoveFromListFailed, err, "listID", listID, "bookID", bookID, "step", "refetch")
		return
	}

	s.mu.Lock()
	s.patchList(listID, func(l domain.BookList) domain.BookList { return l.WithoutBook(bookID) })
	s.books.Set(books)
	s.mu.Unlock()

	s.logger.Info("removed book from list", "listID", listID, "bookID", bookID)
}

// patchList replaces the list with the given ID by fn(list). Caller holds mu.
func (s *Service) patchList(id string, fn func(domain.BookList) domain.BookList) {
	s.bookLists.Update(func(lists []domain.BookList) []domain.BookList {
		out := make([]domain.BookList, len(lists))
		for i, l := range lists {
			if l.ID == id {
				out[i] = fn(l)
			} else {
				out[i] = l
			}
		}
		return out
	})
}
