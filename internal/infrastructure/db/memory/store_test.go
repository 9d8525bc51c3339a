package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stuffhub/inventory-system/internal/core/domain"
)

func TestStoreInsertAndFindOne(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, domain.Doc{"name": "chair", "quantity": 3})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatalf("insert returned empty id")
	}

	doc, err := s.FindOne(ctx, domain.Doc{domain.IDField: id})
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if doc.Str("name") != "chair" {
		t.Fatalf("unexpected document: %v", doc)
	}

	if _, err := s.FindOne(ctx, domain.Doc{"name": "table"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreInsertDuplicateID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Insert(ctx, domain.Doc{domain.IDField: "fixed", "name": "a"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, domain.Doc{domain.IDField: "fixed", "name": "b"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestStoreInsertClonesInput(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	doc := domain.Doc{"name": "chair"}
	id, err := s.Insert(ctx, doc)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Mutating the caller's document must not reach the stored copy.
	doc["name"] = "hacked"
	stored, err := s.FindOne(ctx, domain.Doc{domain.IDField: id})
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if stored.Str("name") != "chair" {
		t.Fatalf("store aliased the caller's document: %v", stored)
	}
}

func TestStoreFindAndCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, owner := range []string{"a@b.com", "a@b.com", "c@d.com"} {
		if _, err := s.Insert(ctx, domain.Doc{"owner": owner}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	docs, err := s.Find(ctx, domain.Doc{"owner": "a@b.com"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(docs))
	}

	n, err := s.Count(ctx, domain.Doc{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 documents, got %d", n)
	}
}

func TestStoreNumericSelectorCoercion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Insert(ctx, domain.Doc{"quantity": 3}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// JSON-decoded selectors carry float64 for numbers.
	if _, err := s.FindOne(ctx, domain.Doc{"quantity": float64(3)}); err != nil {
		t.Fatalf("float64 selector must match stored int: %v", err)
	}
	if _, err := s.FindOne(ctx, domain.Doc{"quantity": float64(4)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUpdateFields(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, domain.Doc{"name": "chair", "quantity": 3})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.UpdateFields(ctx, id, domain.Doc{"quantity": 5, domain.IDField: "evil"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	doc, err := s.FindOne(ctx, domain.Doc{domain.IDField: id})
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if doc.Int("quantity") != 5 {
		t.Fatalf("quantity not updated: %v", doc)
	}
	if doc.ID() != id {
		t.Fatalf("update must never change the id: %v", doc)
	}

	if err := s.UpdateFields(ctx, "missing", domain.Doc{"x": 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, domain.Doc{"name": "chair"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestStoreRemoveAll(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Insert(ctx, domain.Doc{"n": i}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := s.RemoveAll(ctx); err != nil {
		t.Fatalf("removeAll: %v", err)
	}
	n, err := s.Count(ctx, domain.Doc{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}
}

func TestOpenerReturnsSameStorePerName(t *testing.T) {
	o := NewOpener()
	a := o.Open("accounts")
	b := o.Open("accounts")
	c := o.Open("roles")
	if a != b {
		t.Fatalf("same name must yield the same store")
	}
	if a == c {
		t.Fatalf("different names must yield different stores")
	}
}
