package domain

import (
	"errors"
	"testing"
)

func TestIsRole(t *testing.T) {
	if !IsRole(RoleAdmin) || !IsRole(RoleUser) {
		t.Fatalf("defined roles not recognized")
	}
	for _, bad := range []string{"admin", "user", "SUPERUSER", ""} {
		if IsRole(bad) {
			t.Fatalf("%q recognized as a role", bad)
		}
	}
}

func TestAssertRole(t *testing.T) {
	if err := AssertRole(RoleAdmin, RoleUser); err != nil {
		t.Fatalf("valid roles rejected: %v", err)
	}
	if err := AssertRole(RoleAdmin, "GUEST"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
