// Package authz holds the access-control policy: an explicit table mapping
// each (resource, operation) pair to the set of roles allowed to call it.
// The table is built once at startup and is immutable afterwards, so it is
// safe for concurrent use and can be inspected as data rather than being
// scattered across handlers.
package authz

import (
	"fmt"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

// Operation names one of the CRUD verbs a resource exposes.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Resources exposed behind the gate.
const (
	ResourceUsers = "users"
	ResourceRoles = "roles"
)

// AccessRule grants a set of roles access to one operation on one resource.
type AccessRule struct {
	Resource     string
	Operation    Operation
	AllowedRoles []string
}

// Decision is the terminal outcome of an authorization check.
type Decision struct {
	Allowed   bool
	Resource  string
	Operation Operation
}

type ruleKey struct {
	resource  string
	operation Operation
}

// Policy is the resolved access table. A (resource, operation) pair with no
// rule is denied; absence never means allow.
type Policy struct {
	rules map[ruleKey]map[string]struct{}
}

// NewPolicy builds a Policy from the given rules. Registering the same
// (resource, operation) pair twice is a configuration bug and panics, since
// silently merging or overwriting rules would make the table lie.
func NewPolicy(rules ...AccessRule) *Policy {
	p := &Policy{rules: make(map[ruleKey]map[string]struct{}, len(rules))}
	for _, r := range rules {
		key := ruleKey{resource: r.Resource, operation: r.Operation}
		if _, dup := p.rules[key]; dup {
			panic(fmt.Sprintf("authz: duplicate access rule for %s/%s", r.Resource, r.Operation))
		}
		allowed := make(map[string]struct{}, len(r.AllowedRoles))
		for _, role := range r.AllowedRoles {
			allowed[role] = struct{}{}
		}
		p.rules[key] = allowed
	}
	return p
}

// Authorize decides whether a caller holding the given roles may perform the
// operation on the resource: allowed iff the caller's role set intersects the
// rule's allowed set. The check never consults the resource's existence, so
// a denial leaks nothing about stored data.
func (p *Policy) Authorize(resource string, op Operation, roles []string) Decision {
	d := Decision{Resource: resource, Operation: op}
	allowed, ok := p.rules[ruleKey{resource: resource, operation: op}]
	if !ok {
		return d
	}
	for _, role := range roles {
		if _, hit := allowed[role]; hit {
			d.Allowed = true
			return d
		}
	}
	return d
}

// DefaultPolicy is the access table the server boots with: admins manage
// everything, regular users may read, guests get nothing.
func DefaultPolicy() *Policy {
	readers := []string{domain.RoleAdmin, domain.RoleUser}
	admins := []string{domain.RoleAdmin}

	return NewPolicy(
		AccessRule{Resource: ResourceUsers, Operation: OpList, AllowedRoles: readers},
		AccessRule{Resource: ResourceUsers, Operation: OpGet, AllowedRoles: readers},
		AccessRule{Resource: ResourceUsers, Operation: OpCreate, AllowedRoles: admins},
		AccessRule{Resource: ResourceUsers, Operation: OpUpdate, AllowedRoles: admins},
		AccessRule{Resource: ResourceUsers, Operation: OpDelete, AllowedRoles: admins},
		AccessRule{Resource: ResourceRoles, Operation: OpList, AllowedRoles: readers},
		AccessRule{Resource: ResourceRoles, Operation: OpGet, AllowedRoles: readers},
		AccessRule{Resource: ResourceRoles, Operation: OpCreate, AllowedRoles: admins},
		AccessRule{Resource: ResourceRoles, Operation: OpUpdate, AllowedRoles: admins},
		AccessRule{Resource: ResourceRoles, Operation: OpDelete, AllowedRoles: admins},
	)
}
