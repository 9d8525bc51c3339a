// Package collection implements the schema-validated entity stores: a shared
// Base providing CRUD, multi-key lookup, and dump/restore, plus the concrete
// Stuff and profile collections layered on top.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// slugField orders dump contents when present on the first entry.
const slugField = "slug"

// Base carries the behavior shared by every collection. Concrete collections
// embed *Base and shadow Define, Update, RemoveIt, DumpOne, CheckIntegrity,
// and AssertValidRoleForMethod as needed. Because shadowed methods are not
// virtual, Base reaches entity-specific Define/DumpOne through hooks bound at
// construction (see bindHooks).
type Base struct {
	typeName string
	collName string
	store    ports.DocumentStore
	roles    ports.RoleChecker
	validate *validator.Validate
	log      zerolog.Logger

	defineHook  func(ctx context.Context, def domain.Doc) (string, error)
	dumpOneHook func(ctx context.Context, id string) (domain.Doc, error)
}

// NewBase builds the shared core for a collection of the given entity type.
// The collection name is derived the conventional way: "<Type>Collection".
func NewBase(typeName string, store ports.DocumentStore, roles ports.RoleChecker, log zerolog.Logger) *Base {
	return &Base{
		typeName: typeName,
		collName: typeName + "Collection",
		store:    store,
		roles:    roles,
		validate: validator.New(),
		log:      log.With().Str("collection", typeName+"Collection").Logger(),
	}
}

// bindHooks hands Base the entity-specific define and dumpOne so that
// RestoreOne and DumpAll dispatch to the concrete implementations.
func (b *Base) bindHooks(
	define func(ctx context.Context, def domain.Doc) (string, error),
	dumpOne func(ctx context.Context, id string) (domain.Doc, error),
) {
	b.defineHook = define
	b.dumpOneHook = dumpOne
}

func (b *Base) Type() string           { return b.typeName }
func (b *Base) CollectionName() string { return b.collName }

// Define must be overridden by each concrete collection.
func (b *Base) Define(_ context.Context, _ domain.Doc) (string, error) {
	return "", fmt.Errorf("%w: define on %s", domain.ErrNotImplemented, b.collName)
}

// Update must be overridden by each concrete collection.
func (b *Base) Update(_ context.Context, _ string, _ domain.Doc) error {
	return fmt.Errorf("%w: update on %s", domain.ErrNotImplemented, b.collName)
}

// RemoveIt resolves instance to exactly one document and deletes it. The
// document is guaranteed absent afterward.
func (b *Base) RemoveIt(ctx context.Context, instance any) (bool, error) {
	doc, err := b.FindDoc(ctx, instance)
	if err != nil {
		return false, err
	}
	if err := b.store.Remove(ctx, doc.ID()); err != nil {
		return false, fmt.Errorf("remove %s: %w", b.typeName, err)
	}
	return true, nil
}

// Find returns all documents matching selector; a nil selector matches all.
func (b *Base) Find(ctx context.Context, selector domain.Doc) ([]domain.Doc, error) {
	if selector == nil {
		selector = domain.Doc{}
	}
	return b.store.Find(ctx, selector)
}

// FindOne returns the first match, or nil when nothing matches.
func (b *Base) FindOne(ctx context.Context, selector domain.Doc) (domain.Doc, error) {
	if selector == nil {
		selector = domain.Doc{}
	}
	doc, err := b.store.FindOne(ctx, selector)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

// resolverChain turns an identifier into the ordered list of selectors
// FindDoc and IsDefined try: the raw selector when given a document, then
// the conventional name field, then the literal id.
func resolverChain(instance any) []domain.Doc {
	switch v := instance.(type) {
	case domain.Doc:
		return selectorsForDoc(v)
	case map[string]any:
		return selectorsForDoc(domain.Doc(v))
	case string:
		return []domain.Doc{
			{"name": v},
			{domain.IDField: v},
		}
	}
	return nil
}

func selectorsForDoc(d domain.Doc) []domain.Doc {
	if id := d.ID(); id != "" {
		return []domain.Doc{d, {domain.IDField: id}}
	}
	return []domain.Doc{d}
}

// FindDoc is the strict lookup: it resolves instance as a raw selector, a
// name field value, or a literal id, and fails when nothing matches.
func (b *Base) FindDoc(ctx context.Context, instance any) (domain.Doc, error) {
	if instance == nil {
		return nil, fmt.Errorf("%w: nil is not a defined %s", domain.ErrInvalidArgument, b.typeName)
	}
	for _, selector := range resolverChain(instance) {
		doc, err := b.store.FindOne(ctx, selector)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("find %s: %w", b.typeName, err)
		}
	}
	return nil, fmt.Errorf("%w: %v is not a defined %s", domain.ErrNotFound, instance, b.typeName)
}

// IsDefined runs the same resolution as FindDoc but never fails.
func (b *Base) IsDefined(ctx context.Context, instance any) bool {
	if instance == nil {
		return false
	}
	for _, selector := range resolverChain(instance) {
		if _, err := b.store.FindOne(ctx, selector); err == nil {
			return true
		}
	}
	return false
}

// AssertDefined fails unless instance resolves to a document.
func (b *Base) AssertDefined(ctx context.Context, instance any) error {
	if !b.IsDefined(ctx, instance) {
		return fmt.Errorf("%w: %v is not a valid instance of %s", domain.ErrNotFound, instance, b.typeName)
	}
	return nil
}

// Count returns the number of documents currently stored.
func (b *Base) Count(ctx context.Context) (int64, error) {
	return b.store.Count(ctx, domain.Doc{})
}

// AssertRole fails when accountID is absent ("not logged in") or when the
// account does not hold one of the allowed roles.
func (b *Base) AssertRole(ctx context.Context, accountID string, allowed []string) error {
	if accountID == "" {
		return fmt.Errorf("%w: you must be logged in", domain.ErrUnauthorized)
	}
	ok, err := b.roles.IsInRole(ctx, accountID, allowed)
	if err != nil {
		return fmt.Errorf("role check: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: you must be one of the following roles: %v", domain.ErrUnauthorized, allowed)
	}
	return nil
}

// AssertValidRoleForMethod is the default policy for the define, update, and
// removeIt RPC methods: admin only. Collections relax it where appropriate.
func (b *Base) AssertValidRoleForMethod(ctx context.Context, accountID string) error {
	return b.AssertRole(ctx, accountID, []string{domain.RoleAdmin})
}

// CheckIntegrity is the default integrity checker.
func (b *Base) CheckIntegrity(_ context.Context) ([]string, error) {
	return []string{"There is no integrity checker defined for this collection."}, nil
}

// DumpOne must be overridden: the wire format omits generated fields, which
// only the concrete collection knows.
func (b *Base) DumpOne(_ context.Context, id string) (domain.Doc, error) {
	return nil, fmt.Errorf("%w: dumpOne on %s (%s)", domain.ErrNotImplemented, b.collName, id)
}

// DumpAll exports every document via the entity DumpOne, filtering nils and
// sorting by slug when the contents carry one.
func (b *Base) DumpAll(ctx context.Context) (domain.CollectionDump, error) {
	dumpOne := b.dumpOneHook
	if dumpOne == nil {
		dumpOne = b.DumpOne
	}

	docs, err := b.store.Find(ctx, domain.Doc{})
	if err != nil {
		return domain.CollectionDump{}, fmt.Errorf("dump %s: %w", b.collName, err)
	}

	contents := make([]domain.Doc, 0, len(docs))
	for _, doc := range docs {
		dumped, err := dumpOne(ctx, doc.ID())
		if err != nil {
			return domain.CollectionDump{}, err
		}
		if dumped != nil {
			contents = append(contents, dumped)
		}
	}

	if len(contents) > 0 && contents[0].Str(slugField) != "" {
		sort.Slice(contents, func(i, j int) bool {
			return contents[i].Str(slugField) < contents[j].Str(slugField)
		})
	}

	return domain.CollectionDump{Name: b.collName, Contents: contents}, nil
}

// RestoreOne defines the entity represented by the dump object.
func (b *Base) RestoreOne(ctx context.Context, dump domain.Doc) (string, error) {
	if b.defineHook == nil {
		return b.Define(ctx, dump)
	}
	return b.defineHook(ctx, dump)
}

// RestoreAll restores each dump object in sequence. Best effort: prior
// writes stand when a later one fails.
func (b *Base) RestoreAll(ctx context.Context, dumps []domain.Doc) error {
	for _, dump := range dumps {
		if _, err := b.RestoreOne(ctx, dump); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll drops the collection's documents. Test fixtures only.
func (b *Base) RemoveAll(ctx context.Context) error {
	return b.store.RemoveAll(ctx)
}

// validateStruct runs schema validation, folding violations into
// ErrInvalidArgument.
func (b *Base) validateStruct(v any) error {
	if err := b.validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s schema: %s", domain.ErrInvalidArgument, b.typeName, ve.Error())
		}
		return err
	}
	return nil
}
