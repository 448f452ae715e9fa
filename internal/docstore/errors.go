package docstore

import "errors"

var (
	// ErrNotFound is returned when a document, index or version object is absent.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a requested version number is already
	// present in the document's version index. Nothing is written in that case.
	ErrVersionConflict = errors.New("version already exists")
)
