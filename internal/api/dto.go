package api

// Wire shapes of the catalog REST surface, shared by the client and shelfd.
// Responses decode straight into domain.Book and domain.BookList.

// CreateBookRequest is the body of POST /books/
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// CreateListRequest is the body of POST /lists/
type CreateListRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BookIDs     []string `json:"bookIds"`
}

// UpdateListRequest is the body of PUT /lists/{id}/
type UpdateListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMembershipRequest is the body of POST /lists/{id}/books/
type AddMembershipRequest struct {
	BookID string `json:"bookId"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}
