// Package server exposes the catalog store over the REST surface the shelf
// client speaks.
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mmcdole/shelf/internal/api"
	"github.com/mmcdole/shelf/internal/domain"
)

// Catalog is the storage the handlers operate on
type Catalog interface {
	ListBooks() []domain.Book
	GetBook(id string) (domain.Book, error)
	CreateBook(title, author string, year int) (domain.Book, error)
	DeleteBook(id string) error
	ListBookLists() []domain.BookList
	GetBookList(id string) (domain.BookList, error)
	CreateBookList(name, description string, bookIDs []string) (domain.BookList, error)
	UpdateBookList(id, name, description string) (domain.BookList, error)
	DeleteBookList(id string) error
	AddBookToList(listID, bookID string) error
	RemoveBookFromList(listID, bookID string) error
}

// Handler serves the catalog API
type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewRouter mounts the API under basePath (for example "/api") plus an
// unprefixed /health probe.
func NewRouter(catalog Catalog, basePath string, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{catalog: catalog, logger: logger}

	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/health", h.health).Methods("GET")

	routes := r
	if base := "/" + strings.Trim(basePath, "/"); base != "/" {
		routes = r.PathPrefix(base).Subrouter()
	}

	routes.HandleFunc("/books/", h.listBooks).Methods("GET")
	routes.HandleFunc("/books/", h.createBook).Methods("POST")
	routes.HandleFunc("/books/{id}/", h.getBook).Methods("GET")
	routes.HandleFunc("/books/{id}/", h.deleteBook).Methods("DELETE")

	routes.HandleFunc("/lists/", h.listBookLists).Methods("GET")
	routes.HandleFunc("/lists/", h.createBookList).Methods("POST")
	routes.HandleFunc("/lists/{id}/", h.getBookList).Methods("GET")
	routes.HandleFunc("/lists/{id}/", h.updateBookList).Methods("PUT")
	routes.HandleFunc("/lists/{id}/", h.deleteBookList).Methods("DELETE")
	routes.HandleFunc("/lists/{id}/books/", h.addBookToList).Methods("POST")
	routes.HandleFunc("/lists/{id}/books/{bookId}/", h.removeBookFromList).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "route not found"})
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Debug("failed to write health response", "error", err)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
