// Package accounts implements the account directory: a thin store of
// login-capable identities sitting under the profile collections. It is not
// a schema-validated collection; it offers a narrow API the profiles use
// to create, resolve, and guard accounts.
package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// devCredential is the deterministic credential used when the directory runs
// in development mode, so seeded accounts stay reproducible.
const devCredential = "changeme"

const credentialCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Directory manages accounts and registered roles. Profile sources and the
// reference checker are attached after construction because the collections
// that implement them are built on top of the directory.
type Directory struct {
	accounts ports.DocumentStore
	roles    ports.DocumentStore
	log      zerolog.Logger
	devMode  bool

	referenceChecker ports.ReferenceChecker
	profileSources   []ports.ProfileSource
}

func NewDirectory(accounts, roles ports.DocumentStore, devMode bool, log zerolog.Logger) *Directory {
	return &Directory{
		accounts: accounts,
		roles:    roles,
		devMode:  devMode,
		log:      log.With().Str("component", "accounts").Logger(),
	}
}

// SetReferenceChecker wires the ownership guard (the Stuff collection).
func (d *Directory) SetReferenceChecker(rc ports.ReferenceChecker) {
	d.referenceChecker = rc
}

// AttachProfileSources wires the profile collections consulted by GetProfile.
func (d *Directory) AttachProfileSources(sources ...ports.ProfileSource) {
	d.profileSources = append(d.profileSources, sources...)
}

// EnsureRoles idempotently registers every defined role tag. Called once at
// process start.
func (d *Directory) EnsureRoles(ctx context.Context) error {
	for _, role := range domain.Roles() {
		if err := d.ensureRole(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

func (d *Directory) ensureRole(ctx context.Context, role string) error {
	n, err := d.roles.Count(ctx, domain.Doc{"name": role})
	if err != nil {
		return fmt.Errorf("ensure role %s: %w", role, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := d.roles.Insert(ctx, domain.Doc{"name": role}); err != nil {
		return fmt.Errorf("ensure role %s: %w", role, err)
	}
	return nil
}

// Define creates an account for username with the given role, registering
// the role if needed and generating a credential when none is supplied.
// Fails with domain.ErrDuplicate when the username already has an account.
func (d *Directory) Define(ctx context.Context, username, role, credential string) (string, error) {
	if err := domain.AssertRole(role); err != nil {
		return "", err
	}
	if err := d.ensureRole(ctx, role); err != nil {
		return "", err
	}

	if _, err := d.accounts.FindOne(ctx, domain.Doc{"username": username}); err == nil {
		return "", fmt.Errorf("%w: account %s", domain.ErrDuplicate, username)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("define account %s: %w", username, err)
	}

	if credential == "" {
		credential = d.generateCredential()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}

	now := time.Now().UTC()
	id, err := d.accounts.Insert(ctx, domain.Doc{
		"username":        username,
		"credential_hash": string(hash),
		"role":            role,
		"created_at":      now,
		"updated_at":      now,
	})
	if err != nil {
		return "", fmt.Errorf("define account %s: %w", username, err)
	}

	event := d.log.Info().Str("role", role).Str("username", username)
	if d.devMode {
		event = event.Str("credential", credential)
	}
	event.Msg("defined account")
	return id, nil
}

// generateCredential returns the deterministic dev credential in development
// mode, otherwise a random 6-30 character string.
func (d *Directory) generateCredential() string {
	if d.devMode {
		return devCredential
	}
	length := 6 + randInt(25)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = credentialCharset[randInt(len(credentialCharset))]
	}
	return string(buf)
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Authenticate verifies username/credential and returns the account.
func (d *Directory) Authenticate(ctx context.Context, username, credential string) (domain.Account, error) {
	doc, err := d.accounts.FindOne(ctx, domain.Doc{"username": username})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Account{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.Account{}, fmt.Errorf("authenticate %s: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(doc.Str("credential_hash")), []byte(credential)) != nil {
		return domain.Account{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return accountFromDoc(doc), nil
}

// AssertInRole fails unless the account's profile carries one of the
// allowed roles.
func (d *Directory) AssertInRole(ctx context.Context, user string, roles ...string) error {
	accountID := d.GetID(ctx, user)
	profile, err := d.GetProfile(ctx, accountID)
	if err != nil {
		return err
	}
	role := profile.Str("role")
	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not in role %v", domain.ErrUnauthorized, user, roles)
}

// IsInRole reports whether the account's own role tag is among roles.
// Satisfies ports.RoleChecker for the collections' assertions.
func (d *Directory) IsInRole(ctx context.Context, accountID string, roles []string) (bool, error) {
	doc, err := d.accounts.FindOne(ctx, domain.Doc{domain.IDField: accountID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	role := doc.Str("role")
	for _, allowed := range roles {
		if role == allowed {
			return true, nil
		}
	}
	return false, nil
}

// IsReferenced reports whether the account identity still owns entities
// (Stuff ownership records the username, so an account id resolves to its
// username first). Used exclusively as the profile deletion guard.
func (d *Directory) IsReferenced(ctx context.Context, identifier string) (bool, error) {
	if d.referenceChecker == nil {
		return false, nil
	}
	owner := identifier
	if doc, err := d.accounts.FindOne(ctx, domain.Doc{domain.IDField: identifier}); err == nil {
		owner = doc.Str("username")
	}
	return d.referenceChecker.OwnsAny(ctx, owner)
}

// IsDefined reports whether an account exists under the given id or username.
func (d *Directory) IsDefined(ctx context.Context, identifier string) bool {
	doc, err := d.find(ctx, identifier)
	return err == nil && doc != nil
}

// GetID resolves a username or account id to the account id. Deliberately
// lenient, in contrast to the collections' strict FindDoc: a miss is logged
// and returns "".
func (d *Directory) GetID(ctx context.Context, identifier string) string {
	doc, err := d.find(ctx, identifier)
	if err != nil || doc == nil {
		d.log.Error().Str("user", identifier).Msg("user is not defined")
		return ""
	}
	return doc.ID()
}

// GetIDs maps GetID over identifiers, wrapping store failures.
func (d *Directory) GetIDs(ctx context.Context, identifiers []string) ([]string, error) {
	ids := make([]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		doc, err := d.find(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to convert one of %v to an ID: %v", domain.ErrBatchLookup, identifiers, err)
		}
		id := ""
		if doc != nil {
			id = doc.ID()
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetProfile returns the profile document for the given user. A value that
// already looks like a profile passes through unchanged.
func (d *Directory) GetProfile(ctx context.Context, user any) (domain.Doc, error) {
	if doc, ok := domain.LooksLikeProfile(user); ok {
		return doc, nil
	}
	identifier, _ := user.(string)
	accountID := d.GetID(ctx, identifier)
	for _, source := range d.profileSources {
		profile, err := source.ProfileFor(ctx, accountID)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	d.log.Error().Str("user", identifier).Msg("no profile found for user")
	return nil, fmt.Errorf("%w: no profile found for user %v", domain.ErrNotFound, user)
}

// Remove deletes the account record.
func (d *Directory) Remove(ctx context.Context, accountID string) error {
	return d.accounts.Remove(ctx, accountID)
}

// find matches by account id first, then by username; nil, nil on a miss.
func (d *Directory) find(ctx context.Context, identifier string) (domain.Doc, error) {
	if identifier == "" {
		return nil, nil
	}
	for _, selector := range []domain.Doc{
		{domain.IDField: identifier},
		{"username": identifier},
	} {
		doc, err := d.accounts.FindOne(ctx, selector)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func accountFromDoc(doc domain.Doc) domain.Account {
	created, _ := doc["created_at"].(time.Time)
	updated, _ := doc["updated_at"].(time.Time)
	return domain.Account{
		ID:             doc.ID(),
		Username:       doc.Str("username"),
		CredentialHash: doc.Str("credential_hash"),
		Role:           doc.Str("role"),
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}
