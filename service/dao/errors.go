package dao

import "errors"

// Store errors, matched with errors.Is.
var (
	// ErrNotFound is returned when no file exists at the requested URL.
	ErrNotFound = errors.New("store: file not found")
	// ErrInvalidURL is returned for an empty location.
	ErrInvalidURL = errors.New("store: empty url")
	// ErrNilEntity is returned when saving a nil model, layout or table.
	ErrNilEntity = errors.New("store: nil document")
)
