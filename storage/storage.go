package storage

import (
	"errors"

	sent "github.com/revelaction/drawgram/sentence"
)

// ErrNotFound is returned when a document id is not in the repository.
var ErrNotFound = errors.New("doc not found")

// DocReader defines read operations for parsed document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID, with its sentences
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
