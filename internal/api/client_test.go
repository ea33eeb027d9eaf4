package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorded holds what a recordingServer last received
type recorded struct {
	mu          sync.Mutex
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

func (r *recorded) snapshot() (method, path, contentType, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Method, r.Path, r.ContentType, string(r.Body)
}

// recordingServer captures the last request and replies with status and body
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.ContentType = r.Header.Get("Content-Type")
		rec.Body = data
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("NewClient Trims Trailing Slash", func(t *testing.T) {
		c := NewClient("http://example.com/api/", nil, nil)
		if c.BaseURL() != "http://example.com/api" {
			t.Errorf("expected trimmed base URL, got %s", c.BaseURL())
		}
		if c.httpClient == nil || c.httpClient.Timeout != defaultTimeout {
			t.Error("expected default http client with timeout")
		}
	})

	t.Run("ListBooks", func(t *testing.T) {
		srv, rec := recordingServer(t, http.StatusOK, `[{"id":"1","title":"Test Book 1","author":"Author 1","year":2024,"createdAt":"2024-02-23"}]`)
		c := NewClient(srv.URL+"/api", nil, quietLogger())

		books, err := c.ListBooks(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if method, path, _, _ := rec.snapshot(); method != http.MethodGet || path != "/api/books/" {
			t.Errorf("unexpected request %s %s", method, path)
		}
		want := []domain.Book{{ID: "1", Title: "Test Book 1", Author: "Author 1", Year: 2024, CreatedAt: "2024-02-23"}}
		if !reflect.DeepEqual(books, want) {
			t.Errorf("expected %+v, got %+v", want, books)
		}
	})

	t.Run("ListBookLists Null Body", func(t *testing.T) {
		srv, rec := recordingServer(t, http.StatusOK, `null`)
		c := NewClient(srv.URL, nil, quietLogger())

		lists, err := c.ListBookLists(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, path, _, _ := rec.snapshot(); path != "/lists/" {
			t.Errorf("expected /lists/, got %s", path)
		}
		if lists == nil || len(lists) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", lists)
		}
	})

	t.Run("CreateBook Sends JSON Body", func(t *testing.T) {
		srv, rec := recordingServer(t, http.StatusCreated, `{"id":"3","title":"New Book","author":"New Author","year":2024,"createdAt":"2024-02-23"}`)
		c := NewClient(srv.URL, nil, quietLogger())

		book, err := c.CreateBook(ctx, "New Book", "New Author", 2024)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		method, path, ct, body := rec.snapshot()
		if method != http.MethodPost || path != "/books/" {
			t.Errorf("unexpected request %s %s", method, path)
		}
		if ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var sent map[string]any
		if err := json.Unmarshal([]byte(body), &sent); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if sent["title"] != "New Book" || sent["author"] != "New Author" || sent["year"] != float64(2024) {
			t.Errorf("unexpected body %v", sent)
		}
		if book.ID != "3" {
			t.Errorf("expected server-assigned id 3, got %q", book.ID)
		}
	})

	t.Run("CreateBookList Sends Empty BookIds", func(t *testing.T) {
		srv, rec := recordingServer(t, http.StatusCreated, `{"id":"2","name":"New List","description":"","bookIds":[],"bookCount":0,"createdAt":"x"}`)
		c := NewClient(srv.URL, nil, quietLogger())

		if _, err := c.CreateBookList(ctx, "New List", "", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, _, _, body := rec.snapshot(); body != `{"name":"New List","description":"","bookIds":[]}` {
			t.Errorf("unexpected body %s", body)
		}
	})

	t.Run("UpdateBookList", func(t *testing.T) {
		srv, rec := recordingServer(t, http.StatusOK, `{"id":"1","name":"Renamed","description":"d","bookIds":["1"],"bookCount":1,"createdAt":"x"}`)
		c := NewClient(srv.URL, nil, quietLogger())

		list, err := c.UpdateBookList(ctx, "1", "Renamed", "d")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		method, path, _, body := rec.snapshot()
		if method != http.MethodPut || path != "/lists/1/" {
			t.Errorf("unexpected request %s %s", method, path)
		}
		if body != `{"name":"Renamed","description":"d"}` {
			t.Errorf("unexpected body %s", body)
		}
		if list.Name != "Renamed" || list.BookCount != 1 {
			t.Errorf("unexpected list %+v", list)
		}
	})

	t.Run("Delete And Membership Paths", func(t *testing.T) {
		tests := []struct {
			name   string
			call   func(c *Client) error
			method string
			path   string
			body   string
		}{
			{
				name:   "delete book",
				call:   func(c *Client) error { return c.DeleteBook(ctx, "1") },
				method: http.MethodDelete,
				path:   "/books/1/",
			},
			{
				name:   "delete list",
				call:   func(c *Client) error { return c.DeleteBookList(ctx, "7") },
				method: http.MethodDelete,
				path:   "/lists/7/",
			},
			{
				name:   "add membership",
				call:   func(c *Client) error { return c.AddBookToList(ctx, "1", "2") },
				method: http.MethodPost,
				path:   "/lists/1/books/",
				body:   `{"bookId":"2"}`,
			},
			{
				name:   "remove membership",
				call:   func(c *Client) error { return c.RemoveBookFromList(ctx, "1", "2") },
				method: http.MethodDelete,
				path:   "/lists/1/books/2/",
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				srv, rec := recordingServer(t, http.StatusNoContent, "")
				c := NewClient(srv.URL, nil, quietLogger())

				if err := tc.call(c); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				method, path, _, body := rec.snapshot()
				if method != tc.method || path != tc.path {
					t.Errorf("expected %s %s, got %s %s", tc.method, tc.path, method, path)
				}
				if body != tc.body {
					t.Errorf("expected body %q, got %q", tc.body, body)
				}
			})
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
		c := NewClient(srv.URL, nil, quietLogger())

		_, err := c.ListBooks(ctx)
		if !errors.Is(err, domain.ErrRequestFailed) {
			t.Fatalf("expected ErrRequestFailed, got %v", err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Error("500 should not match ErrNotFound")
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected *StatusError, got %T", err)
		}
		if statusErr.StatusCode != http.StatusInternalServerError || statusErr.Message != "boom" {
			t.Errorf("unexpected status error %+v", statusErr)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusNotFound, `{"error":"list not found"}`)
		c := NewClient(srv.URL, nil, quietLogger())

		err := c.DeleteBookList(ctx, "missing")
		if !errors.Is(err, domain.ErrNotFound) || !errors.Is(err, domain.ErrRequestFailed) {
			t.Errorf("expected ErrNotFound and ErrRequestFailed, got %v", err)
		}
	})

	t.Run("Unreachable Server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(url, nil, quietLogger())
		_, err := c.ListBookLists(ctx)
		if !errors.Is(err, domain.ErrServerUnreachable) {
			t.Errorf("expected ErrServerUnreachable, got %v", err)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusOK, `{not json`)
		c := NewClient(srv.URL, nil, quietLogger())

		if _, err := c.ListBooks(ctx); err == nil {
			t.Error("expected parse error")
		}
	})
}
