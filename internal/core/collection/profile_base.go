package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// placeholderAccountID fills the account back-reference while a profile is
// being inserted ahead of its account (AdminProfile ordering).
const placeholderAccountID = "ABCDEFGHJKLMNPQRS"

// ProfileBase extends Base with account-linkage semantics: every profile
// document carries email, firstName, lastName, role, and an accountID
// back-reference into the directory.
type ProfileBase struct {
	*Base
	directory ports.AccountDirectory
}

func NewProfileBase(typeName string, store ports.DocumentStore, directory ports.AccountDirectory, log zerolog.Logger) *ProfileBase {
	return &ProfileBase{
		Base:      NewBase(typeName, store, directory, log),
		directory: directory,
	}
}

// GetID resolves instance to a profile id, trying in order: the instance's
// own id field, an email match, an account back-reference match, and a
// literal id. Store failures are wrapped in ErrLookup.
func (p *ProfileBase) GetID(ctx context.Context, instance any) (string, error) {
	identifier := ""
	switch v := instance.(type) {
	case domain.Doc:
		if id := v.ID(); id != "" {
			return id, nil
		}
	case map[string]any:
		if id := domain.Doc(v).ID(); id != "" {
			return id, nil
		}
	case string:
		identifier = v
	default:
		return "", fmt.Errorf("%w: cannot convert %v to a %s ID", domain.ErrLookup, instance, p.typeName)
	}

	for _, selector := range []domain.Doc{
		{"email": identifier},
		{"accountID": identifier},
		{domain.IDField: identifier},
	} {
		doc, err := p.store.FindOne(ctx, selector)
		if err == nil {
			return doc.ID(), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: failed to convert %q to a %s ID: %v", domain.ErrLookup, identifier, p.typeName, err)
		}
	}
	return "", fmt.Errorf("%w: %q is not a defined %s", domain.ErrNotFound, identifier, p.typeName)
}

// GetProfile returns the profile linked to the given account identity
// (username or account id).
func (p *ProfileBase) GetProfile(ctx context.Context, user string) (domain.Doc, error) {
	accountID := p.directory.GetID(ctx, user)
	doc, err := p.store.FindOne(ctx, domain.Doc{"accountID": accountID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no profile found for user %s", domain.ErrNotFound, user)
		}
		return nil, err
	}
	return doc, nil
}

// FindByEmail returns the profile with the given email, or nil when absent.
func (p *ProfileBase) FindByEmail(ctx context.Context, email string) (domain.Doc, error) {
	return p.FindOne(ctx, domain.Doc{"email": email})
}

// HasProfile reports whether the account identity has a profile here.
func (p *ProfileBase) HasProfile(ctx context.Context, user string) bool {
	accountID := p.directory.GetID(ctx, user)
	if accountID == "" {
		return false
	}
	_, err := p.store.FindOne(ctx, domain.Doc{"accountID": accountID})
	return err == nil
}

// GetUserID returns the account id linked to the given profile id.
func (p *ProfileBase) GetUserID(ctx context.Context, profileID string) (string, error) {
	doc, err := p.store.FindOne(ctx, domain.Doc{domain.IDField: profileID})
	if err != nil {
		return "", fmt.Errorf("get account for profile %s: %w", profileID, err)
	}
	return doc.Str("accountID"), nil
}

// ProfileFor locates the profile by account back-reference. Directory hook.
func (p *ProfileBase) ProfileFor(ctx context.Context, accountID string) (domain.Doc, error) {
	return p.store.FindOne(ctx, domain.Doc{"accountID": accountID})
}

// RemoveIt deletes the profile together with its linked account. The
// account goes first: if the reference guard refuses, nothing is touched.
// Deletion is two-step and non-atomic at the Profile+Account granularity.
func (p *ProfileBase) RemoveIt(ctx context.Context, instance any) (bool, error) {
	doc, err := p.FindDoc(ctx, instance)
	if err != nil {
		return false, err
	}

	accountID := doc.Str("accountID")
	referenced, err := p.directory.IsReferenced(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("reference check for %s: %w", doc.Str("email"), err)
	}
	if referenced {
		return false, fmt.Errorf("%w: user %s owns Stuff", domain.ErrConflict, doc.Str("email"))
	}

	if err := p.directory.Remove(ctx, accountID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("remove account %s: %w", accountID, err)
	}
	return p.Base.RemoveIt(ctx, doc.ID())
}

// defineProfile implements the idempotent profile define shared by the
// concrete profile collections: an existing document matching the
// identifying fields {email, firstName, lastName} short-circuits to its id.
// createAccountFirst selects the subclass ordering; the post-condition, a
// consistent profile/account pair, is the same either way.
func (p *ProfileBase) defineProfile(ctx context.Context, def domain.Doc, role string, createAccountFirst bool) (string, error) {
	email := def.Str("email")
	firstName := def.Str("firstName")
	lastName := def.Str("lastName")
	credential := def.Str("password")

	existing, err := p.FindOne(ctx, domain.Doc{
		"email":     email,
		"firstName": firstName,
		"lastName":  lastName,
	})
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID(), nil
	}

	profile := domain.Profile{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		AccountID: placeholderAccountID,
	}
	if err := p.validateStruct(profile); err != nil {
		return "", err
	}

	if createAccountFirst {
		accountID, err := p.directory.Define(ctx, email, role, credential)
		if err != nil {
			return "", err
		}
		return p.store.Insert(ctx, domain.Doc{
			"email":     email,
			"firstName": firstName,
			"lastName":  lastName,
			"role":      role,
			"accountID": accountID,
		})
	}

	profileID, err := p.store.Insert(ctx, domain.Doc{
		"email":     email,
		"firstName": firstName,
		"lastName":  lastName,
		"role":      role,
		"accountID": placeholderAccountID,
	})
	if err != nil {
		return "", err
	}
	accountID, err := p.directory.Define(ctx, email, role, credential)
	if err != nil {
		return "", err
	}
	if err := p.store.UpdateFields(ctx, profileID, domain.Doc{"accountID": accountID}); err != nil {
		return "", err
	}
	return profileID, nil
}

// updateNames applies the mutable profile fields. Email, role, and the
// account back-reference never change through update.
func (p *ProfileBase) updateNames(ctx context.Context, id string, fields domain.Doc) error {
	if err := p.AssertDefined(ctx, id); err != nil {
		return err
	}
	updates := domain.Doc{}
	if v := fields.Str("firstName"); v != "" {
		updates["firstName"] = v
	}
	if v := fields.Str("lastName"); v != "" {
		updates["lastName"] = v
	}
	if len(updates) == 0 {
		return nil
	}
	return p.store.UpdateFields(ctx, id, updates)
}

// checkRoleIntegrity reports every document whose role field differs from
// the collection's expected constant.
func (p *ProfileBase) checkRoleIntegrity(ctx context.Context, expectedRole string) ([]string, error) {
	docs, err := p.store.Find(ctx, domain.Doc{})
	if err != nil {
		return nil, err
	}
	var problems []string
	for _, doc := range docs {
		if doc.Str("role") != expectedRole {
			problems = append(problems,
				fmt.Sprintf("%s instance does not have ROLE.%s: %s (%s)", p.typeName, expectedRole, doc.Str("email"), doc.ID()))
		}
	}
	return problems, nil
}

// dumpProfile emits the define-shaped wire format: identifying fields only.
// Role and account linkage are reconstructed by define on restore, and
// credentials are regenerated, so the dump is lossy.
func (p *ProfileBase) dumpProfile(ctx context.Context, id string) (domain.Doc, error) {
	doc, err := p.FindDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.Doc{
		"email":     doc.Str("email"),
		"firstName": doc.Str("firstName"),
		"lastName":  doc.Str("lastName"),
	}, nil
}
