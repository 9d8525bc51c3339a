package collection

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/stuffhub/inventory-system/internal/core/accounts"
	"github.com/stuffhub/inventory-system/internal/infrastructure/db/memory"
)

// testEnv wires the full collection layer against in-memory stores, the way
// main does against Mongo. Development mode keeps credentials deterministic.
type testEnv struct {
	directory     *accounts.Directory
	stuffs        *StuffCollection
	adminProfiles *AdminProfileCollection
	userProfiles  *UserProfileCollection
	registry      *Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	opener := memory.NewOpener()

	directory := accounts.NewDirectory(opener.Open("accounts"), opener.Open("roles"), true, log)
	stuffs := NewStuffCollection(opener.Open("StuffCollection"), directory, log)
	adminProfiles := NewAdminProfileCollection(opener.Open("AdminProfileCollection"), directory, log)
	userProfiles := NewUserProfileCollection(opener.Open("UserProfileCollection"), directory, log)

	directory.SetReferenceChecker(stuffs)
	directory.AttachProfileSources(adminProfiles, userProfiles)

	return &testEnv{
		directory:     directory,
		stuffs:        stuffs,
		adminProfiles: adminProfiles,
		userProfiles:  userProfiles,
		registry:      NewRegistry(adminProfiles, stuffs, userProfiles),
	}
}
