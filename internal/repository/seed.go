package repository

import (
	"fmt"
	"time"

	"iot-dashboard/internal/domain"
)

// seedReference the moment the mock data was captured. Seeds keep their distance from it,
// so "2m ago" stays "2m ago" whenever the service starts.
var seedReference = time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC)

func rebase(now time.Time, recorded string) time.Time {
	t, err := time.Parse(time.RFC3339, recorded)
	if err != nil {
		panic(fmt.Sprintf("repository: bad seed timestamp %q", recorded))
	}
	return now.Add(t.Sub(seedReference))
}

func floatp(v float64) *float64 { return &v }
func intp(v int) *int { return &v }

// SeedDevices the demo device catalog
func SeedDevices(now time.Time) []domain.Device {
	return []domain.Device{
		{ID: "1", Name: "Smart Thermostat Living Room", Type: "Climate Control", Status: domain.DeviceOnline,
			Location: "Building A - Floor 1", Temperature: floatp(22.5), Humidity: floatp(45), Power: 85,
			BatteryLevel: intp(92), LastUpdate: rebase(now, "2024-01-15T10:30:00Z")},
		{ID: "2", Name: "Security Camera Main Entrance", Type: "Security", Status: domain.DeviceWarning,
			Location: "Building A - Entrance", Power: 120,
			BatteryLevel: intp(78), LastUpdate: rebase(now, "2024-01-15T10:29:00Z")},
		{ID: "3", Name: "LED Light Controller Office", Type: "Lighting", Status: domain.DeviceOffline,
			Location: "Building B - Floor 2", Power: 0,
			BatteryLevel: intp(0), LastUpdate: rebase(now, "2024-01-15T10:15:00Z")},
		{ID: "4", Name: "Environmental Sensor Lab", Type: "Monitoring", Status: domain.DeviceOnline,
			Location: "Building A - Floor 2", Temperature: floatp(21.8), Humidity: floatp(52), Power: 45,
			BatteryLevel: intp(88), LastUpdate: rebase(now, "2024-01-15T10:30:30Z")},
		{ID: "5", Name: "Smart Lock Conference Room", Type: "Security", Status: domain.DeviceOnline,
			Location: "Building B - Floor 1", Power: 25,
			BatteryLevel: intp(95), LastUpdate: rebase(now, "2024-01-15T10:28:00Z")},
		{ID: "6", Name: "Air Quality Monitor", Type: "Monitoring", Status: domain.DeviceError,
			Location: "Building A - Floor 3", Temperature: floatp(24.2), Humidity: floatp(38), Power: 0,
			BatteryLevel: intp(15), LastUpdate: rebase(now, "2024-01-15T09:45:00Z")},
	}
}

// Demo login accounts, one per role
var personaEmails = map[domain.Role]string{
	domain.RoleSuperAdmin: "superadmin@demo.com",
	domain.RoleAdmin:      "admin@demo.com",
	domain.RoleCustomer:   "customer@demo.com",
}

// PersonaEmail email of the demo account that logs in as role
func PersonaEmail(role domain.Role) string {
	role.MustValid()
	return personaEmails[role]
}

// IsDemoAccount reports whether u is the login account of its role
func IsDemoAccount(u domain.User) bool {
	return u.Role.Valid() && personaEmails[u.Role] == u.Email
}

func seedUser(id, name, email string, role domain.Role, active bool, lastLogin *time.Time) domain.User {
	u, err := domain.NewUser(id, name, email, role, active)
	if err != nil {
		panic(err)
	}
	u.LastLogin = lastLogin
	return u
}

func at(t time.Time) *time.Time { return &t }

// SeedUsers the user catalog followed by the three demo login accounts
func SeedUsers(now time.Time) []domain.User {
	return []domain.User{
		seedUser("1", "John Smith", "john.smith@company.com", domain.RoleSuperAdmin, true, at(rebase(now, "2024-01-15T09:30:00Z"))),
		seedUser("2", "Sarah Johnson", "sarah.johnson@company.com", domain.RoleAdmin, true, at(rebase(now, "2024-01-15T08:45:00Z"))),
		seedUser("3", "Mike Wilson", "mike.wilson@company.com", domain.RoleAdmin, false, at(rebase(now, "2024-01-12T16:20:00Z"))),
		seedUser("4", "Emily Davis", "emily.davis@company.com", domain.RoleCustomer, true, at(rebase(now, "2024-01-15T10:15:00Z"))),
		seedUser("5", "David Brown", "david.brown@company.com", domain.RoleCustomer, true, at(rebase(now, "2024-01-14T14:30:00Z"))),
		seedUser("6", "Lisa Anderson", "lisa.anderson@company.com", domain.RoleCustomer, false, at(rebase(now, "2024-01-10T11:45:00Z"))),
		seedUser("demo-super-admin", "John Smith", personaEmails[domain.RoleSuperAdmin], domain.RoleSuperAdmin, true, nil),
		seedUser("demo-admin", "Sarah Johnson", personaEmails[domain.RoleAdmin], domain.RoleAdmin, true, nil),
		seedUser("demo-customer", "Mike Wilson", personaEmails[domain.RoleCustomer], domain.RoleCustomer, true, nil),
	}
}

// SeedNotifications the notification list every new session starts with
func SeedNotifications(now time.Time) []domain.Notification {
	n := func(id, title, msg string, typ domain.NotificationType, ts string, read bool) domain.Notification {
		return domain.Notification{ID: id, Title: title, Message: msg, Type: typ, Timestamp: rebase(now, ts), IsRead: read}
	}
	return []domain.Notification{
		n("1", "Device Offline", "LED Light Controller in Building B - Floor 2 has gone offline",
			domain.NotificationError, "2024-01-15T10:15:00Z", false),
		n("2", "Low Battery Warning", "Security Camera Main Entrance battery level is at 15%",
			domain.NotificationWarning, "2024-01-15T09:30:00Z", false),
		n("3", "System Update Complete", "IoT Control Hub has been successfully updated to version 2.1.0",
			domain.NotificationSuccess, "2024-01-15T08:45:00Z", true),
		n("4", "New Device Connected", "Smart Lock Conference Room has been successfully added to your network",
			domain.NotificationInfo, "2024-01-14T16:20:00Z", false),
		n("5", "High Temperature Alert", "Environmental Sensor Lab is reporting temperature above normal range (26.5°C)",
			domain.NotificationWarning, "2024-01-14T14:30:00Z", true),
		n("6", "Energy Consumption Report", "Your monthly energy consumption report is now available for download",
			domain.NotificationInfo, "2024-01-14T12:00:00Z", false),
		n("7", "Security Alert", "Multiple failed login attempts detected from IP 192.168.1.100",
			domain.NotificationError, "2024-01-14T10:45:00Z", false),
		n("8", "Maintenance Scheduled", "System maintenance is scheduled for tonight from 2:00 AM to 4:00 AM",
			domain.NotificationInfo, "2024-01-13T18:00:00Z", true),
	}
}
