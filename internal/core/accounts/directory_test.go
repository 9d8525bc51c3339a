package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/infrastructure/db/memory"
)

func newTestDirectory(devMode bool) *Directory {
	opener := memory.NewOpener()
	return NewDirectory(opener.Open("accounts"), opener.Open("roles"), devMode, zerolog.Nop())
}

type referenceCheckerStub struct {
	owners map[string]bool
	asked  []string
}

func (s *referenceCheckerStub) OwnsAny(_ context.Context, owner string) (bool, error) {
	s.asked = append(s.asked, owner)
	return s.owners[owner], nil
}

type profileSourceStub struct {
	profiles map[string]domain.Doc
}

func (s profileSourceStub) ProfileFor(_ context.Context, accountID string) (domain.Doc, error) {
	p, ok := s.profiles[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func TestDirectoryDefine(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	if id == "" {
		t.Fatalf("define returned empty id")
	}

	if !d.IsDefined(ctx, "alice@foo.com") {
		t.Fatalf("account not defined by username")
	}
	if !d.IsDefined(ctx, id) {
		t.Fatalf("account not defined by id")
	}
	if got := d.GetID(ctx, "alice@foo.com"); got != id {
		t.Fatalf("getID by username: got %q, want %q", got, id)
	}
	if got := d.GetID(ctx, id); got != id {
		t.Fatalf("getID by id: got %q, want %q", got, id)
	}
}

func TestDirectoryDefineDuplicate(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	if _, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw"); err != nil {
		t.Fatalf("first define: %v", err)
	}
	_, err := d.Define(ctx, "alice@foo.com", domain.RoleAdmin, "other")
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDirectoryDefineInvalidRole(t *testing.T) {
	d := newTestDirectory(true)
	_, err := d.Define(context.Background(), "alice@foo.com", "SUPERUSER", "pw")
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestDirectoryAuthenticate(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	account, err := d.Authenticate(ctx, "alice@foo.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if account.ID != id || account.Username != "alice@foo.com" || account.Role != domain.RoleUser {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := d.Authenticate(ctx, "alice@foo.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad credential, got %v", err)
	}
	if _, err := d.Authenticate(ctx, "nobody@foo.com", "pw"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestDirectoryDevCredential(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	// No credential supplied: development mode falls back to the
	// deterministic one.
	if _, err := d.Define(ctx, "seed@foo.com", domain.RoleAdmin, ""); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := d.Authenticate(ctx, "seed@foo.com", "changeme"); err != nil {
		t.Fatalf("authenticate with dev credential: %v", err)
	}
}

func TestDirectoryGeneratedCredentialBounds(t *testing.T) {
	d := newTestDirectory(false)
	for i := 0; i < 20; i++ {
		cred := d.generateCredential()
		if len(cred) < 6 || len(cred) > 30 {
			t.Fatalf("credential length %d out of range", len(cred))
		}
		if cred == devCredential {
			t.Fatalf("production mode produced the dev credential")
		}
	}
}

func TestDirectoryGetIDIsLenient(t *testing.T) {
	d := newTestDirectory(true)
	if got := d.GetID(context.Background(), "nobody@foo.com"); got != "" {
		t.Fatalf("unknown user must resolve to empty id, got %q", got)
	}
	if got := d.GetID(context.Background(), ""); got != "" {
		t.Fatalf("empty identifier must resolve to empty id, got %q", got)
	}
}

func TestDirectoryGetIDs(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	aliceID, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	bobID, err := d.Define(ctx, "bob@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	ids, err := d.GetIDs(ctx, []string{"alice@foo.com", "nobody@foo.com", bobID})
	if err != nil {
		t.Fatalf("getIDs: %v", err)
	}
	want := []string{aliceID, "", bobID}
	if len(ids) != len(want) {
		t.Fatalf("ids: %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids[%d]: got %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestDirectoryIsInRole(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	ok, err := d.IsInRole(ctx, id, []string{domain.RoleUser})
	if err != nil || !ok {
		t.Fatalf("expected USER membership: %v %v", ok, err)
	}
	ok, err = d.IsInRole(ctx, id, []string{domain.RoleAdmin})
	if err != nil || ok {
		t.Fatalf("expected no ADMIN membership: %v %v", ok, err)
	}
	ok, err = d.IsInRole(ctx, "no-such-account", []string{domain.RoleUser})
	if err != nil || ok {
		t.Fatalf("unknown account must not be in any role: %v %v", ok, err)
	}
}

func TestDirectoryIsReferencedResolvesUsername(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	checker := &referenceCheckerStub{owners: map[string]bool{"alice@foo.com": true}}
	d.SetReferenceChecker(checker)

	// Ownership is recorded under the username, so the guard must resolve
	// the account id before asking.
	referenced, err := d.IsReferenced(ctx, id)
	if err != nil {
		t.Fatalf("isReferenced: %v", err)
	}
	if !referenced {
		t.Fatalf("owner not detected through account id")
	}
	if len(checker.asked) != 1 || checker.asked[0] != "alice@foo.com" {
		t.Fatalf("guard asked with %v, want the username", checker.asked)
	}
}

func TestDirectoryIsReferencedWithoutChecker(t *testing.T) {
	d := newTestDirectory(true)
	referenced, err := d.IsReferenced(context.Background(), "anything")
	if err != nil || referenced {
		t.Fatalf("unwired guard must report unreferenced: %v %v", referenced, err)
	}
}

func TestDirectoryGetProfile(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	profile := domain.Doc{"email": "alice@foo.com", "firstName": "Alice", "lastName": "Liddell", "role": domain.RoleUser, "accountID": id}
	d.AttachProfileSources(profileSourceStub{profiles: map[string]domain.Doc{id: profile}})

	got, err := d.GetProfile(ctx, "alice@foo.com")
	if err != nil {
		t.Fatalf("getProfile: %v", err)
	}
	if got.Str("firstName") != "Alice" {
		t.Fatalf("unexpected profile: %v", got)
	}

	// A value already shaped like a profile passes through unchanged.
	direct, err := d.GetProfile(ctx, profile)
	if err != nil {
		t.Fatalf("getProfile pass-through: %v", err)
	}
	if direct.Str("lastName") != "Liddell" {
		t.Fatalf("pass-through altered the profile: %v", direct)
	}

	if _, err := d.GetProfile(ctx, "nobody@foo.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for profileless user, got %v", err)
	}
}

func TestDirectoryAssertInRole(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	profile := domain.Doc{"email": "alice@foo.com", "firstName": "Alice", "lastName": "Liddell", "role": domain.RoleUser, "accountID": id}
	d.AttachProfileSources(profileSourceStub{profiles: map[string]domain.Doc{id: profile}})

	if err := d.AssertInRole(ctx, "alice@foo.com", domain.RoleUser); err != nil {
		t.Fatalf("assertInRole: %v", err)
	}
	if err := d.AssertInRole(ctx, "alice@foo.com", domain.RoleAdmin); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDirectoryEnsureRolesIsIdempotent(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	if err := d.EnsureRoles(ctx); err != nil {
		t.Fatalf("first ensureRoles: %v", err)
	}
	if err := d.EnsureRoles(ctx); err != nil {
		t.Fatalf("second ensureRoles: %v", err)
	}

	n, err := d.roles.Count(ctx, domain.Doc{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(domain.Roles())) {
		t.Fatalf("expected %d role records, got %d", len(domain.Roles()), n)
	}
}

func TestDirectoryRemove(t *testing.T) {
	d := newTestDirectory(true)
	ctx := context.Background()

	id, err := d.Define(ctx, "alice@foo.com", domain.RoleUser, "pw")
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := d.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d.IsDefined(ctx, "alice@foo.com") {
		t.Fatalf("account still defined after remove")
	}
}
