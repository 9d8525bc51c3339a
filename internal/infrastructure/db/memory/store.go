// Package memory provides an in-process DocumentStore used by tests and the
// memory storage backend. Matching semantics mirror the Mongo store for the
// exact-equality selectors the collection layer issues.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// Store is a mutex-guarded map of documents keyed by id.
type Store struct {
	mu   sync.RWMutex
	docs map[string]domain.Doc
}

// Opener hands out named in-process stores, creating them on first use.
type Opener struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewOpener() *Opener {
	return &Opener{stores: make(map[string]*Store)}
}

func (o *Opener) Open(name string) ports.DocumentStore {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.stores[name]
	if !ok {
		s = NewStore()
		o.stores[name] = s
	}
	return s
}

func NewStore() *Store {
	return &Store{docs: make(map[string]domain.Doc)}
}

func (s *Store) Insert(_ context.Context, doc domain.Doc) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := doc.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored[domain.IDField] = id
	} else if _, exists := s.docs[id]; exists {
		return "", domain.ErrDuplicate
	}
	s.docs[id] = stored
	return id, nil
}

func (s *Store) FindOne(_ context.Context, selector domain.Doc) (domain.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if matches(doc, selector) {
			return doc.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) Find(_ context.Context, selector domain.Doc) ([]domain.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Doc
	for _, doc := range s.docs {
		if matches(doc, selector) {
			out = append(out, doc.Clone())
		}
	}
	return out, nil
}

func (s *Store) UpdateFields(_ context.Context, id string, fields domain.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range fields {
		if k == domain.IDField {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *Store) Count(_ context.Context, selector domain.Doc) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, doc := range s.docs {
		if matches(doc, selector) {
			n++
		}
	}
	return n, nil
}

func (s *Store) RemoveAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.Doc)
	return nil
}

// matches reports whether every selector field equals the stored value.
// Numeric fields compare by value so JSON-decoded float64 selectors match
// stored ints.
func matches(doc, selector domain.Doc) bool {
	for k, want := range selector {
		got, ok := doc[k]
		if !ok {
			return false
		}
		if !valueEqual(got, want) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
