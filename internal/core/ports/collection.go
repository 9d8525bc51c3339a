package ports

import (
	"context"

	"github.com/stuffhub/inventory-system/internal/core/domain"
)

// Collection is the entity-store contract every concrete collection
// satisfies. Shared behavior lives in the collection package's Base;
// concrete collections supply their own Define, Update, RemoveIt, DumpOne,
// CheckIntegrity, and role policy.
type Collection interface {
	// Type returns the human-readable entity type ("Stuff", "AdminProfile").
	Type() string
	// CollectionName returns the registry/dump name ("StuffCollection").
	CollectionName() string

	Define(ctx context.Context, def domain.Doc) (string, error)
	Update(ctx context.Context, id string, fields domain.Doc) error
	RemoveIt(ctx context.Context, instance any) (bool, error)

	Find(ctx context.Context, selector domain.Doc) ([]domain.Doc, error)
	FindOne(ctx context.Context, selector domain.Doc) (domain.Doc, error)
	FindDoc(ctx context.Context, instance any) (domain.Doc, error)
	IsDefined(ctx context.Context, instance any) bool
	AssertDefined(ctx context.Context, instance any) error
	Count(ctx context.Context) (int64, error)

	// AssertValidRoleForMethod gates the define/update/removeIt RPC methods.
	AssertValidRoleForMethod(ctx context.Context, accountID string) error

	CheckIntegrity(ctx context.Context) ([]string, error)
	DumpOne(ctx context.Context, id string) (domain.Doc, error)
	DumpAll(ctx context.Context) (domain.CollectionDump, error)
	RestoreOne(ctx context.Context, dump domain.Doc) (string, error)
	RestoreAll(ctx context.Context, dumps []domain.Doc) error
}
