// Package store persists the shelfd catalog in a bbolt file. Records are
// JSON-encoded under their ID; every record is also held in memory so reads
// never touch the file. An empty path runs the store memory-only.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/shelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketBooks = []byte("books")
	bucketLists = []byte("lists")
	bucketMeta  = []byte("meta")
)

var keySeq = []byte("seq")

// bookRecord is the stored form of a book. Seq preserves insertion order.
type bookRecord struct {
	domain.Book
	Seq uint64 `json:"seq"`
}

type listRecord struct {
	domain.BookList
	Seq uint64 `json:"seq"`
}

// CatalogStore holds books and lists for the development backend
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex

	books map[string]bookRecord
	lists map[string]listRecord
	seq   uint64

	newID func() string
	now   func() time.Time
}

// Option configures a CatalogStore
type Option func(*CatalogStore)

// WithIDFunc overrides ID generation
func WithIDFunc(fn func() string) Option {
	return func(s *CatalogStore) { s.newID = fn }
}

// WithClock overrides the createdAt clock
func WithClock(fn func() time.Time) Option {
	return func(s *CatalogStore) { s.now = fn }
}

// Open opens (or creates) the store at path. An empty path keeps everything
// in memory.
func Open(path string, opts ...Option) (*CatalogStore, error) {
	s := &CatalogStore{
		books: make(map[string]bookRecord),
		lists: make(map[string]listRecord),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		// Memory-only mode (no persistence)
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBooks, bucketLists, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	if err := s.warm(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return s, nil
}

// warm loads every record into memory
func (s *CatalogStore) warm() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keySeq); v != nil {
			if err := json.Unmarshal(v, &s.seq); err != nil {
				return err
			}
		}
		err := tx.Bucket(bucketBooks).ForEach(func(k, v []byte) error {
			var rec bookRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("book %s: %w", k, err)
			}
			s.books[rec.ID] = rec
			return nil
		})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketLists).ForEach(func(k, v []byte) error {
			var rec listRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("list %s: %w", k, err)
			}
			s.lists[rec.ID] = rec
			return nil
		})
	})
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers (caller holds mu) ===

// write applies puts and deletes to bbolt in one transaction
type write struct {
	bucket []byte
	key    string
	value  any // nil deletes
}

func (s *CatalogStore) persist(writes ...write) error {
	if s.db == nil {
		return nil // Memory-only mode
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, w := range writes {
			b := tx.Bucket(w.bucket)
			if w.value == nil {
				if err := b.Delete([]byte(w.key)); err != nil {
					return err
				}
				continue
			}
			data, err := json.Marshal(w.value)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(w.key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *CatalogStore) nextSeq() (uint64, write) {
	s.seq++
	return s.seq, write{bucketMeta, string(keySeq), s.seq}
}

func (s *CatalogStore) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// === Books ===

// ListBooks returns books in creation order
func (s *CatalogStore) ListBooks() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]bookRecord, 0, len(s.books))
	for _, rec := range s.books {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b bookRecord) int { return compareSeq(a.Seq, b.Seq) })

	books := make([]domain.Book, len(recs))
	for i, rec := range recs {
		books[i] = rec.Book
	}
	return books
}

// GetBook returns the book with id
func (s *CatalogStore) GetBook(id string) (domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.books[id]
	if !ok {
		return domain.Book{}, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return rec.Book, nil
}

// CreateBook validates and stores a new book with a fresh ID
func (s *CatalogStore) CreateBook(title, author string, year int) (domain.Book, error) {
	title, author = strings.TrimSpace(title), strings.TrimSpace(author)
	if title == "" || author == "" {
		return domain.Book{}, fmt.Errorf("title and author are required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, seqWrite := s.nextSeq()
	rec := bookRecord{
		Book: domain.Book{
			ID:        s.newID(),
			Title:     title,
			Author:    author,
			Year:      year,
			CreatedAt: s.timestamp(),
		},
		Seq: seq,
	}
	if err := s.persist(write{bucketBooks, rec.ID, rec}, seqWrite); err != nil {
		s.seq--
		return domain.Book{}, err
	}
	s.books[rec.ID] = rec
	return rec.Book, nil
}

// DeleteBook removes a book and its ID from every list
func (s *CatalogStore) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	writes := []write{{bucketBooks, id, nil}}
	touched := make(map[string]listRecord)
	for listID, rec := range s.lists {
		if !rec.Contains(id) {
			continue
		}
		rec.BookList = withCount(rec.WithoutBook(id))
		touched[listID] = rec
		writes = append(writes, write{bucketLists, listID, rec})
	}

	if err := s.persist(writes...); err != nil {
		return err
	}
	delete(s.books, id)
	for listID, rec := range touched {
		s.lists[listID] = rec
	}
	return nil
}

// === Lists ===

// ListBookLists returns lists in creation order
func (s *CatalogStore) ListBookLists() []domain.BookList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]listRecord, 0, len(s.lists))
	for _, rec := range s.lists {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b listRecord) int { return compareSeq(a.Seq, b.Seq) })

	lists := make([]domain.BookList, len(recs))
	for i, rec := range recs {
		lists[i] = rec.BookList
	}
	return lists
}

// GetBookList returns the list with id
func (s *CatalogStore) GetBookList(id string) (domain.BookList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.lists[id]
	if !ok {
		return domain.BookList{}, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	return rec.BookList, nil
}

// CreateBookList stores a new list. Duplicate and unknown book IDs are dropped.
func (s *CatalogStore) CreateBookList(name, description string, bookIDs []string) (domain.BookList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.BookList{}, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := domain.BookList{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		BookIDs:     []string{},
		CreatedAt:   s.timestamp(),
	}
	for _, id := range bookIDs {
		if _, ok := s.books[id]; ok {
			list = list.WithBook(id)
		}
	}

	seq, seqWrite := s.nextSeq()
	rec := listRecord{BookList: withCount(list), Seq: seq}
	if err := s.persist(write{bucketLists, rec.ID, rec}, seqWrite); err != nil {
		s.seq--
		return domain.BookList{}, err
	}
	s.lists[rec.ID] = rec
	return rec.BookList, nil
}

// UpdateBookList replaces a list's name and description
func (s *CatalogStore) UpdateBookList(id, name, description string) (domain.BookList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.BookList{}, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}

	return s.modifyList(id, func(l domain.BookList) (domain.BookList, error) {
		l.Name = name
		l.Description = strings.TrimSpace(description)
		return l, nil
	})
}

func (s *CatalogStore) DeleteBookList(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	if err := s.persist(write{bucketLists, id, nil}); err != nil {
		return err
	}
	delete(s.lists, id)
	return nil
}

// AddBookToList records membership. Adding an existing member changes nothing.
func (s *CatalogStore) AddBookToList(listID, bookID string) error {
	_, err := s.modifyList(listID, func(l domain.BookList) (domain.BookList, error) {
		if _, ok := s.books[bookID]; !ok {
			return l, fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
		}
		return l.WithBook(bookID), nil
	})
	return err
}

// RemoveBookFromList drops membership. Removing a non-member changes nothing.
func (s *CatalogStore) RemoveBookFromList(listID, bookID string) error {
	_, err := s.modifyList(listID, func(l domain.BookList) (domain.BookList, error) {
		return l.WithoutBook(bookID), nil
	})
	return err
}

// modifyList applies fn to a stored list and persists the result
func (s *CatalogStore) modifyList(id string, fn func(domain.BookList) (domain.BookList, error)) (domain.BookList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lists[id]
	if !ok {
		return domain.BookList{}, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	updated, err := fn(rec.BookList)
	if err != nil {
		return domain.BookList{}, err
	}
	rec.BookList = withCount(updated)
	if err := s.persist(write{bucketLists, id, rec}); err != nil {
		return domain.BookList{}, err
	}
	s.lists[id] = rec
	return rec.BookList, nil
}

// withCount keeps bookCount equal to the membership length
func withCount(l domain.BookList) domain.BookList {
	l.BookCount = len(l.BookIDs)
	return l
}

func compareSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
