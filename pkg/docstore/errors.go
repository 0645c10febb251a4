package docstore

import "errors"

var (
	// ErrEmptyInput is returned when ingesting zero chunks or searching
	// with a blank query.
	ErrEmptyInput = errors.New("docstore: empty input")

	// ErrNotFound is returned when operating on an unknown document id.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrPersistence wraps failures writing the store to disk. The in-memory
	// state is rolled back before this is returned.
	ErrPersistence = errors.New("docstore: persistence failed")
)
