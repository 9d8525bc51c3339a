package collection

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// UserProfileCollection stores the profiles of USER accounts.
type UserProfileCollection struct {
	*ProfileBase
}

func NewUserProfileCollection(store ports.DocumentStore, directory ports.AccountDirectory, log zerolog.Logger) *UserProfileCollection {
	c := &UserProfileCollection{ProfileBase: NewProfileBase("UserProfile", store, directory, log)}
	c.bindHooks(c.Define, c.DumpOne)
	return c
}

// Define creates the backing account first, then the profile linked at
// insert time. Idempotent on {email, firstName, lastName}.
func (c *UserProfileCollection) Define(ctx context.Context, def domain.Doc) (string, error) {
	return c.defineProfile(ctx, def, domain.RoleUser, true)
}

// Update changes first and last name only; email and role are immutable.
func (c *UserProfileCollection) Update(ctx context.Context, id string, fields domain.Doc) error {
	return c.updateNames(ctx, id, fields)
}

// RemoveIt deletes the profile and its account unless the account still
// owns referenced data. An unknown id is a quiet no-op.
func (c *UserProfileCollection) RemoveIt(ctx context.Context, instance any) (bool, error) {
	if !c.IsDefined(ctx, instance) {
		return false, nil
	}
	return c.ProfileBase.RemoveIt(ctx, instance)
}

// AssertValidRoleForMethod allows any caller: new visitors sign themselves
// up, so define must work without a logged-in admin.
func (c *UserProfileCollection) AssertValidRoleForMethod(_ context.Context, _ string) error {
	return nil
}

// CheckIntegrity reports user profiles whose role field is not USER.
func (c *UserProfileCollection) CheckIntegrity(ctx context.Context) ([]string, error) {
	return c.checkRoleIntegrity(ctx, domain.RoleUser)
}

// DumpOne emits {email, firstName, lastName}; role and account linkage are
// rebuilt by Define on restore.
func (c *UserProfileCollection) DumpOne(ctx context.Context, id string) (domain.Doc, error) {
	return c.dumpProfile(ctx, id)
}
