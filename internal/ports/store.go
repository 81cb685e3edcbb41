package ports

import "funkit/internal/domain"

// DocumentStore is the persistence boundary. The store is the single source
// of truth: no derived reference graph is ever written back. Adapters must
// normalize whatever row shape they read into domain.Document; nothing above
// this port special-cases row shape.
type DocumentStore interface {
	// Get returns the document, or (nil, nil) when the id does not exist.
	Get(id int64) (*domain.Document, error)

	// ListAllIDs returns every document id in the store.
	ListAllIDs() ([]int64, error)

	// Index returns an id/title/preview listing of all documents.
	Index() ([]domain.IndexEntry, error)

	// Add stores a new text document and returns its id.
	Add(title, body string) (int64, error)

	// AddBinary stores a new binary document and returns its id.
	AddBinary(title string, blob []byte) (int64, error)

	// Update replaces the body of an existing text document.
	Update(id int64, body string) error

	// Append adds text to the end of an existing text document body.
	Append(id int64, extra string) error

	// Delete permanently removes a document.
	Delete(id int64) error
}

// ParentResolver is an optional store capability: an explicit parent
// relation. Stores that derive structure purely from inline references do
// not implement it, and ancestor reconstruction degrades gracefully.
type ParentResolver interface {
	// Parent returns the parent id of a document, or ok=false when the
	// document has no parent (or does not exist).
	Parent(id int64) (parent int64, ok bool, err error)
}
