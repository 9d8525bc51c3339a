package collection

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// Registry holds the application's collections: a name index for RPC
// dispatch and a fixed load sequence for dump and restore. The sequence
// order matters: profile collections create accounts as a side effect, so
// they load before collections that reference account identities.
type Registry struct {
	byName       map[string]ports.Collection
	loadSequence []ports.Collection
}

// NewRegistry builds a registry from the collections in load-sequence order.
func NewRegistry(loadSequence ...ports.Collection) *Registry {
	byName := make(map[string]ports.Collection, len(loadSequence))
	for _, col := range loadSequence {
		byName[col.CollectionName()] = col
	}
	return &Registry{byName: byName, loadSequence: loadSequence}
}

// Get returns the collection registered under name.
func (r *Registry) Get(name string) (ports.Collection, error) {
	col, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, name)
	}
	return col, nil
}

// LoadSequence returns the collections in fixed load order.
func (r *Registry) LoadSequence() []ports.Collection {
	return r.loadSequence
}

// DumpDatabase exports every collection in the load sequence, sorted by
// collection name and wrapped with the export timestamp.
func (r *Registry) DumpDatabase(ctx context.Context) (domain.DatabaseDump, error) {
	collections := make([]domain.CollectionDump, 0, len(r.loadSequence))
	for _, col := range r.loadSequence {
		dump, err := col.DumpAll(ctx)
		if err != nil {
			return domain.DatabaseDump{}, err
		}
		collections = append(collections, dump)
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return domain.DatabaseDump{Timestamp: time.Now().UTC(), Collections: collections}, nil
}

// LoadFixture merges the dump into the live collections, following the load
// sequence. Returns a human-readable summary of what was defined plus the
// new-instance count per collection name.
func (r *Registry) LoadFixture(ctx context.Context, fixture domain.DatabaseDump) (string, map[string]int, error) {
	var parts []string
	defined := make(map[string]int, len(r.loadSequence))
	for _, col := range r.loadSequence {
		count, msg, err := LoadCollectionNewDataOnly(ctx, col, fixture)
		if err != nil {
			return "", nil, err
		}
		defined[col.CollectionName()] = count
		if msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return "Defined no new instances.", defined, nil
	}
	return strings.Join(parts, ", "), defined, nil
}

// CheckIntegrity runs every collection's integrity checker and returns the
// problems keyed by collection name.
func (r *Registry) CheckIntegrity(ctx context.Context) (map[string][]string, error) {
	problems := make(map[string][]string, len(r.loadSequence))
	for _, col := range r.loadSequence {
		found, err := col.CheckIntegrity(ctx)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", col.CollectionName(), err)
		}
		problems[col.CollectionName()] = found
	}
	return problems, nil
}
