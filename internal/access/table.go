package access

import "iot-dashboard/internal/domain"

var (
	everyone = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleCustomer}
	staff    = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin}
)

// DefaultDestinations sidebar table in display order
func DefaultDestinations() []domain.Destination {
	return []domain.Destination{
		{ID: domain.DestDashboard, Label: "nav.dashboard", AllowedRoles: everyone},
		{ID: domain.DestDevices, Label: "nav.devices", AllowedRoles: everyone},
		{ID: domain.DestUsers, Label: "nav.users", AllowedRoles: staff},
		{ID: domain.DestAnalytics, Label: "nav.analytics", AllowedRoles: staff},
		{ID: domain.DestSecurity, Label: "nav.security", AllowedRoles: []domain.Role{domain.RoleSuperAdmin}},
		{ID: domain.DestSettings, Label: "nav.settings", AllowedRoles: everyone},
	}
}
