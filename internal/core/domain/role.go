package domain

import (
	"fmt"
	"strings"
)

// RoleSet is the closed, configuration-driven set of valid roles. The first
// entry is the super-admin role. Role names are resolved case-insensitively
// at the boundary and stored with their canonical spelling, so all internal
// comparisons are exact.
type RoleSet struct {
	roles []string
}

func NewRoleSet(roles []string) (*RoleSet, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("role set must contain at least one role")
	}
	canonical := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			return nil, fmt.Errorf("role set contains an empty role name")
		}
		for _, seen := range canonical {
			if strings.EqualFold(seen, r) {
				return nil, fmt.Errorf("duplicate role %q in role set", r)
			}
		}
		canonical = append(canonical, r)
	}
	return &RoleSet{roles: canonical}, nil
}

// Resolve maps name to its canonical spelling, matching case-insensitively.
// Unknown names return ErrInvalidRole.
func (rs *RoleSet) Resolve(name string) (string, error) {
	for _, r := range rs.roles {
		if strings.EqualFold(r, name) {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

// Contains reports whether name is a member of the set.
func (rs *RoleSet) Contains(name string) bool {
	_, err := rs.Resolve(name)
	return err == nil
}

// SuperAdmin returns the role allowed to perform administrative operations.
func (rs *RoleSet) SuperAdmin() string {
	return rs.roles[0]
}

// All returns the canonical role names in configuration order.
func (rs *RoleSet) All() []string {
	return append([]string(nil), rs.roles...)
}
