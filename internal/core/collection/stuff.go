package collection

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// StuffCollection stores the owned inventory items. Duplicates are
// permitted: define always inserts, even for identical field sets.
type StuffCollection struct {
	*Base
}

func NewStuffCollection(store ports.DocumentStore, roles ports.RoleChecker, log zerolog.Logger) *StuffCollection {
	c := &StuffCollection{Base: NewBase("Stuff", store, roles, log)}
	c.bindHooks(c.Define, c.DumpOne)
	return c
}

// Define validates the item against the schema and inserts a new document,
// returning its id.
func (c *StuffCollection) Define(ctx context.Context, def domain.Doc) (string, error) {
	item := domain.StuffFromDoc(def)
	if err := c.validateStruct(item); err != nil {
		return "", err
	}
	return c.store.Insert(ctx, item.Doc())
}

// Update applies the mutable fields: name, quantity, and condition. The
// owner identity never changes through update.
func (c *StuffCollection) Update(ctx context.Context, id string, fields domain.Doc) error {
	if err := c.AssertDefined(ctx, id); err != nil {
		return err
	}

	updates := domain.Doc{}
	if v := fields.Str("name"); v != "" {
		updates["name"] = v
	}
	if _, ok := fields["quantity"]; ok {
		q := fields.Int("quantity")
		if q < 0 {
			return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidArgument)
		}
		updates["quantity"] = q
	}
	if v := fields.Str("condition"); v != "" {
		valid := false
		for _, cond := range domain.StuffConditions {
			if v == cond {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: %q is not a valid condition", domain.ErrInvalidArgument, v)
		}
		updates["condition"] = v
	}
	if len(updates) == 0 {
		return nil
	}
	return c.store.UpdateFields(ctx, id, updates)
}

// AssertValidRoleForMethod lets both admins and users manage their items.
func (c *StuffCollection) AssertValidRoleForMethod(ctx context.Context, accountID string) error {
	return c.AssertRole(ctx, accountID, []string{domain.RoleAdmin, domain.RoleUser})
}

// DumpOne emits the full define-shaped document for one item.
func (c *StuffCollection) DumpOne(ctx context.Context, id string) (domain.Doc, error) {
	doc, err := c.FindDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.StuffFromDoc(doc).Doc(), nil
}

// OwnsAny reports whether the given account identity owns at least one item.
// The account directory uses this as its deletion guard.
func (c *StuffCollection) OwnsAny(ctx context.Context, owner string) (bool, error) {
	n, err := c.store.Count(ctx, domain.Doc{"owner": owner})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
