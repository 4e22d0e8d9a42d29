package domain

// NotificationChannels which alerts the user wants and where
type NotificationChannels struct {
	Email         bool `json:"email"`
	Push          bool `json:"push"`
	SMS           bool `json:"sms"`
	DeviceAlerts  bool `json:"deviceAlerts"`
	SystemUpdates bool `json:"systemUpdates"`
	WeeklyReports bool `json:"weeklyReports"`
}

// Preferences display preferences
type Preferences struct {
	Theme           string `json:"theme" validate:"required,oneof=light dark auto"`
	Language        string `json:"language" validate:"required,oneof=en fa"`
	Timezone        string `json:"timezone" validate:"required"`
	DateFormat      string `json:"dateFormat" validate:"required,oneof=MM/DD/YYYY DD/MM/YYYY YYYY-MM-DD"`
	TemperatureUnit string `json:"temperatureUnit" validate:"required,oneof=celsius fahrenheit"`
}

// Settings the settings form. Passwords are never echoed back.
type Settings struct {
	Name          string               `json:"name" validate:"required,max=100"`
	Email         string               `json:"email" validate:"required,email"`
	Notifications NotificationChannels `json:"notifications"`
	Preferences   Preferences          `json:"preferences"`
}

// DefaultSettings seeds the form for user
func DefaultSettings(user User, language string) Settings {
	if language == "" {
		language = "en"
	}
	return Settings{
		Name:  user.Name,
		Email: user.Email,
		Notifications: NotificationChannels{
			Email:         true,
			Push:          true,
			DeviceAlerts:  true,
			SystemUpdates: true,
			WeeklyReports: true,
		},
		Preferences: Preferences{
			Theme:           "light",
			Language:        language,
			Timezone:        "UTC+0",
			DateFormat:      "MM/DD/YYYY",
			TemperatureUnit: "celsius",
		},
	}
}
