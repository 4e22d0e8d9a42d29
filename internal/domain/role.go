package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRole is returned when a role string is outside the enumerated set
var ErrInvalidRole = errors.New("invalid role")

// Role dashboard role. The zero value is not a valid role.
type Role uint8

const (
	RoleSuperAdmin Role = iota + 1
	RoleAdmin
	RoleCustomer
)

// Roles lists every valid role, most privileged first
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleCustomer}

// ParseRole converts the wire form ("super-admin", "admin", "customer") into a Role
func ParseRole(s string) (Role, error) {
	switch s {
	case "super-admin":
		return RoleSuperAdmin, nil
	case "admin":
		return RoleAdmin, nil
	case "customer":
		return RoleCustomer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Valid reports whether r is one of the enumerated roles
func (r Role) Valid() bool {
	return r >= RoleSuperAdmin && r <= RoleCustomer
}

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super-admin"
	case RoleAdmin:
		return "admin"
	case RoleCustomer:
		return "customer"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// MustValid panics on an out-of-range role. Permission checks call it: a bad Role value
// reaching them means a constructor was bypassed.
func (r Role) MustValid() {
	if !r.Valid() {
		panic(fmt.Sprintf("domain: %v is not a valid role", r))
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, uint8(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
