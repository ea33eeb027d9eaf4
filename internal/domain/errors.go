package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrNotFound indicates the requested book, list or membership does not exist
	ErrNotFound = errors.New("not found")

	// ErrServerUnreachable indicates the catalog API could not be reached
	ErrServerUnreachable = errors.New("catalog server is unreachable")

	// ErrRequestFailed indicates the server rejected or failed a request
	ErrRequestFailed = errors.New("catalog request failed")

	// ErrInvalidInput indicates a request payload failed validation
	ErrInvalidInput = errors.New("invalid input")
)
