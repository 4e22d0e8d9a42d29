package access

import "iot-dashboard/internal/domain"

// Action ids shown on the security page
const (
	ActionManageUsers     = "manage_users"
	ActionManageAdmins    = "manage_admins"
	ActionDeleteCustomers = "delete_customers"
	ActionDeleteAdmins    = "delete_admins"
	ActionManageDevices   = "manage_devices"
)

// MatrixRow what one role may do
type MatrixRow struct {
	Role         domain.Role     `json:"role"`
	Destinations []string        `json:"destinations"`
	Actions      map[string]bool `json:"actions"`
}

// PermissionMatrix one row per role, most privileged first
func (c *Controller) PermissionMatrix() []MatrixRow {
	rows := make([]MatrixRow, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		visible := c.VisibleDestinations(role)
		ids := make([]string, 0, len(visible))
		for _, d := range visible {
			ids = append(ids, d.ID)
		}
		rows = append(rows, MatrixRow{
			Role:         role,
			Destinations: ids,
			Actions: map[string]bool{
				ActionManageUsers:     CanManageUsers(role),
				ActionManageAdmins:    CanManageAdmins(role),
				ActionDeleteCustomers: CanDeleteUser(role, domain.RoleCustomer),
				ActionDeleteAdmins:    CanDeleteUser(role, domain.RoleAdmin),
				ActionManageDevices:   CanManageDevices(role),
			},
		})
	}
	return rows
}
