package domain

import "errors"

var (
	// ErrNotFound indicates the requested article does not exist in the
	// document store.
	ErrNotFound = errors.New("article not found")
	// ErrNoContent indicates a page was fetched but no usable article body
	// could be extracted from it.
	ErrNoContent = errors.New("no article content extracted")
	// ErrInvalidIdentifier indicates an identifier that matches no known
	// shape and cannot be resolved.
	ErrInvalidIdentifier = errors.New("invalid article identifier")
)
