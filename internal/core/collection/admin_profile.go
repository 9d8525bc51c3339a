package collection

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// AdminProfileCollection stores the profiles of ADMIN accounts.
type AdminProfileCollection struct {
	*ProfileBase
}

func NewAdminProfileCollection(store ports.DocumentStore, directory ports.AccountDirectory, log zerolog.Logger) *AdminProfileCollection {
	c := &AdminProfileCollection{ProfileBase: NewProfileBase("AdminProfile", store, directory, log)}
	c.bindHooks(c.Define, c.DumpOne)
	return c
}

// Define creates the admin profile and its backing account. Idempotent on
// {email, firstName, lastName}: an equivalent existing profile's id is
// returned instead of creating a second one. The profile is inserted first
// with a placeholder back-reference, then patched once the account exists.
func (c *AdminProfileCollection) Define(ctx context.Context, def domain.Doc) (string, error) {
	return c.defineProfile(ctx, def, domain.RoleAdmin, false)
}

// Update changes first and last name only; email and role are immutable.
func (c *AdminProfileCollection) Update(ctx context.Context, id string, fields domain.Doc) error {
	return c.updateNames(ctx, id, fields)
}

// RemoveIt deletes the profile and its account unless the account still
// owns referenced data. An unknown id is a quiet no-op.
func (c *AdminProfileCollection) RemoveIt(ctx context.Context, instance any) (bool, error) {
	if !c.IsDefined(ctx, instance) {
		return false, nil
	}
	return c.ProfileBase.RemoveIt(ctx, instance)
}

// CheckIntegrity reports admin profiles whose role field is not ADMIN.
func (c *AdminProfileCollection) CheckIntegrity(ctx context.Context) ([]string, error) {
	return c.checkRoleIntegrity(ctx, domain.RoleAdmin)
}

// DumpOne emits {email, firstName, lastName}; role and account linkage are
// rebuilt by Define on restore.
func (c *AdminProfileCollection) DumpOne(ctx context.Context, id string) (domain.Doc, error) {
	return c.dumpProfile(ctx, id)
}
