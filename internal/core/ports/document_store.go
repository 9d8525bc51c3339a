package ports

import (
	"context"

	"github.com/stuffhub/inventory-system/internal/core/domain"
)

// DocumentStore is the persistence port collections speak to. Selectors are
// documents whose fields must all match exactly. Implementations rely on the
// underlying store's atomic single-document operations; no cross-document
// transaction is offered.
type DocumentStore interface {
	// Insert stores a new document and returns its assigned id.
	Insert(ctx context.Context, doc domain.Doc) (string, error)
	// FindOne returns the first match, or domain.ErrNotFound.
	FindOne(ctx context.Context, selector domain.Doc) (domain.Doc, error)
	// Find returns all matches; an empty selector matches everything.
	Find(ctx context.Context, selector domain.Doc) ([]domain.Doc, error)
	// UpdateFields sets the given fields on the identified document,
	// leaving omitted fields unchanged.
	UpdateFields(ctx context.Context, id string, fields domain.Doc) error
	// Remove deletes the identified document.
	Remove(ctx context.Context, id string) error
	// Count returns the number of matching documents.
	Count(ctx context.Context, selector domain.Doc) (int64, error)
	// RemoveAll drops every document. Test fixtures only.
	RemoveAll(ctx context.Context) error
}

// StoreOpener hands out one DocumentStore per collection name.
type StoreOpener interface {
	Open(name string) DocumentStore
}
