package domain

// Destination ids
const (
	DestDashboard = "dashboard"
	DestDevices   = "devices"
	DestUsers     = "users"
	DestAnalytics = "analytics"
	DestSecurity  = "security"
	DestSettings  = "settings"
)

// Destination navigable page of the dashboard. Label is the i18n key of its title.
type Destination struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	AllowedRoles []Role `json:"allowedRoles"`
}

// Allows reports whether role is in AllowedRoles
func (d Destination) Allows(role Role) bool {
	for _, r := range d.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
