package ports

import (
	"context"

	"github.com/stuffhub/inventory-system/internal/core/domain"
)

// RoleChecker answers whether an account currently holds one of the given
// roles. Collections use it for authorization assertions.
type RoleChecker interface {
	IsInRole(ctx context.Context, accountID string, roles []string) (bool, error)
}

// AccountDirectory is the profile collections' view of the account
// subsystem: create accounts, resolve identities leniently, guard deletions.
type AccountDirectory interface {
	RoleChecker

	// Define registers the role if needed, creates the account (generating a
	// credential when none is supplied), and returns the new account id.
	// Fails with domain.ErrDuplicate when the username is taken.
	Define(ctx context.Context, username, role, credential string) (string, error)
	// GetID resolves a username or account id to the account id. Lenient:
	// returns "" (logged) when no account matches.
	GetID(ctx context.Context, identifier string) string
	// IsReferenced reports whether any owned entity still references the
	// account. Deletion guard for linked profiles.
	IsReferenced(ctx context.Context, identifier string) (bool, error)
	// Remove deletes the account record.
	Remove(ctx context.Context, accountID string) error
}

// ReferenceChecker reports whether an account identity (username) still owns
// entities. Implemented by the Stuff collection.
type ReferenceChecker interface {
	OwnsAny(ctx context.Context, owner string) (bool, error)
}

// ProfileSource locates the profile linked to an account id. Implemented by
// the profile collections and consulted by the directory's GetProfile.
type ProfileSource interface {
	ProfileFor(ctx context.Context, accountID string) (domain.Doc, error)
}
