package access

import (
	"errors"
	"fmt"

	"iot-dashboard/internal/domain"
)

var (
	// ErrPermissionDenied the role may not reach the destination or perform the action
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnknownDestination the destination id is not in the table
	ErrUnknownDestination = errors.New("unknown destination")
)

// Controller answers what a role may see and do. It is immutable after construction.
type Controller struct {
	table []domain.Destination
	index map[string]int
}

// NewController validates table and keeps a private copy of it
func NewController(table []domain.Destination) (*Controller, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("destination table is empty")
	}

	c := &Controller{
		table: make([]domain.Destination, 0, len(table)),
		index: make(map[string]int, len(table)),
	}
	for _, d := range table {
		if d.ID == "" {
			return nil, fmt.Errorf("destination id is required")
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate destination %q", d.ID)
		}
		if len(d.AllowedRoles) == 0 {
			return nil, fmt.Errorf("destination %q allows no role", d.ID)
		}
		for _, r := range d.AllowedRoles {
			if !r.Valid() {
				return nil, fmt.Errorf("destination %q: %w: %d", d.ID, domain.ErrInvalidRole, uint8(r))
			}
		}
		d.AllowedRoles = append([]domain.Role(nil), d.AllowedRoles...)
		c.index[d.ID] = len(c.table)
		c.table = append(c.table, d)
	}
	return c, nil
}

// Destinations returns the full table in declared order
func (c *Controller) Destinations() []domain.Destination {
	return append([]domain.Destination(nil), c.table...)
}

// VisibleDestinations returns the destinations role may reach, in table order
func (c *Controller) VisibleDestinations(role domain.Role) []domain.Destination {
	role.MustValid()

	out := make([]domain.Destination, 0, len(c.table))
	for _, d := range c.table {
		if d.Allows(role) {
			out = append(out, d)
		}
	}
	return out
}

// CanAccess reports whether role may reach destinationID. Unknown ids are never accessible.
func (c *Controller) CanAccess(role domain.Role, destinationID string) bool {
	return c.Guard(role, destinationID) == nil
}

// Guard is CanAccess with the reason
func (c *Controller) Guard(role domain.Role, destinationID string) error {
	role.MustValid()

	i, ok := c.index[destinationID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, destinationID)
	}
	if !c.table[i].Allows(role) {
		return fmt.Errorf("%w: %s may not open %q", ErrPermissionDenied, role, destinationID)
	}
	return nil
}

// CanManageUsers admin and super-admin
func CanManageUsers(role domain.Role) bool {
	switch role {
	case domain.RoleSuperAdmin, domain.RoleAdmin:
		return true
	case domain.RoleCustomer:
		return false
	}
	role.MustValid()
	return false
}

// CanManageAdmins super-admin only
func CanManageAdmins(role domain.Role) bool {
	switch role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleAdmin, domain.RoleCustomer:
		return false
	}
	role.MustValid()
	return false
}

// CanDeleteUser super-admin may delete anyone; admin may delete customers only
func CanDeleteUser(acting, target domain.Role) bool {
	target.MustValid()
	switch acting {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleAdmin:
		return target == domain.RoleCustomer
	case domain.RoleCustomer:
		return false
	}
	acting.MustValid()
	return false
}

// CanManageDevices gates the edit/delete row actions of the device list
func CanManageDevices(role domain.Role) bool {
	return CanManageUsers(role)
}

// AssignableRoles roles role may give to a new user
func AssignableRoles(role domain.Role) []domain.Role {
	switch role {
	case domain.RoleSuperAdmin:
		return []domain.Role{domain.RoleAdmin, domain.RoleCustomer}
	case domain.RoleAdmin:
		return []domain.Role{domain.RoleCustomer}
	case domain.RoleCustomer:
		return []domain.Role{}
	}
	role.MustValid()
	return nil
}
