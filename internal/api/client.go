package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Shelf/1.0"
)

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap lets callers match domain.ErrRequestFailed and, for 404, domain.ErrNotFound
func (e *StatusError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{domain.ErrRequestFailed, domain.ErrNotFound}
	}
	return []error{domain.ErrRequestFailed}
}

// Client implements domain.CatalogRepository against the catalog REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog API client. A nil httpClient gets a default
// client with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the normalized API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a JSON request and decodes the response into out (if non-nil)
func (c *Client) doRequest(ctx context.Context, method, path string, in, out any) error {
	reqURL := c.baseURL + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.logger.Error("catalog request failed", "method", method, "url", reqURL, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("catalog request error", "method", method, "url", reqURL, "status", resp.StatusCode, "body", string(respBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(respBody))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from an error response body
func errorMessage(body []byte) string {
	var payload ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

// ListBooks returns every book
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.doRequest(ctx, http.MethodGet, "/books/", nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// ListBookLists returns every book list
func (c *Client) ListBookLists(ctx context.Context) ([]domain.BookList, error) {
	var lists []domain.BookList
	if err := c.doRequest(ctx, http.MethodGet, "/lists/", nil, &lists); err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []domain.BookList{}
	}
	return lists, nil
}

// CreateBook creates a book and returns the server's record
func (c *Client) CreateBook(ctx context.Context, title, author string, year int) (domain.Book, error) {
	req := CreateBookRequest{Title: title, Author: author, Year: year}
	var book domain.Book
	if err := c.doRequest(ctx, http.MethodPost, "/books/", req, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// DeleteBook removes a book
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/books/"+url.PathEscape(id)+"/", nil, nil)
}

// CreateBookList creates a list with an initial membership
func (c *Client) CreateBookList(ctx context.Context, name, description string, bookIDs []string) (domain.BookList, error) {
	if bookIDs == nil {
		bookIDs = []string{}
	}
	req := CreateListRequest{Name: name, Description: description, BookIDs: bookIDs}
	var list domain.BookList
	if err := c.doRequest(ctx, http.MethodPost, "/lists/", req, &list); err != nil {
		return domain.BookList{}, err
	}
	return list, nil
}

// UpdateBookList changes a list's name and description
func (c *Client) UpdateBookList(ctx context.Context, id, name, description string) (domain.BookList, error) {
	req := UpdateListRequest{Name: name, Description: description}
	var list domain.BookList
	if err := c.doRequest(ctx, http.MethodPut, "/lists/"+url.PathEscape(id)+"/", req, &list); err != nil {
		return domain.BookList{}, err
	}
	return list, nil
}

// DeleteBookList removes a list
func (c *Client) DeleteBookList(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/lists/"+url.PathEscape(id)+"/", nil, nil)
}

// AddBookToList records list membership
func (c *Client) AddBookToList(ctx context.Context, listID, bookID string) error {
	path := fmt.Sprintf("/lists/%s/books/", url.PathEscape(listID))
	return c.doRequest(ctx, http.MethodPost, path, AddMembershipRequest{BookID: bookID}, nil)
}

// RemoveBookFromList deletes a membership record
func (c *Client) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	path := fmt.Sprintf("/lists/%s/books/%s/", url.PathEscape(listID), url.PathEscape(bookID))
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
