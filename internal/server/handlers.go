package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mmcdole/shelf/internal/api"
	"github.com/mmcdole/shelf/internal/domain"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.ListBooks())
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBookRequest
	if !h.decode(w, r, &req) {
		return
	}
	book, err := h.catalog.CreateBook(req.Title, req.Author, req.Year)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, book)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.GetBook(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBook(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listBookLists(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.ListBookLists())
}

func (h *Handler) createBookList(w http.ResponseWriter, r *http.Request) {
	var req api.CreateListRequest
	if !h.decode(w, r, &req) {
		return
	}
	list, err := h.catalog.CreateBookList(req.Name, req.Description, req.BookIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, list)
}

func (h *Handler) getBookList(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.GetBookList(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) updateBookList(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateListRequest
	if !h.decode(w, r, &req) {
		return
	}
	list, err := h.catalog.UpdateBookList(mux.Vars(r)["id"], req.Name, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) deleteBookList(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteBookList(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addBookToList(w http.ResponseWriter, r *http.Request) {
	var req api.AddMembershipRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.BookID == "" {
		h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "bookId is required"})
		return
	}
	if err := h.catalog.AddBookToList(mux.Vars(r)["id"], req.BookID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeBookFromList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.catalog.RemoveBookFromList(vars["id"], vars["bookId"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into dest, answering 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// writeError maps store errors onto status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("failed to handle request", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("failed to write response", "status", status, "error", err)
	}
}
