package domain

import "fmt"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Roles returns the fixed set of authorization role tags.
func Roles() []string {
	return []string{RoleAdmin, RoleUser}
}

// IsRole reports whether role is one of the defined role tags.
func IsRole(role string) bool {
	for _, r := range Roles() {
		if role == r {
			return true
		}
	}
	return false
}

// AssertRole fails if any of the passed tags is not a recognized role.
func AssertRole(roles ...string) error {
	for _, r := range roles {
		if !IsRole(r) {
			return fmt.Errorf("%w: %q", ErrInvalidRole, r)
		}
	}
	return nil
}
