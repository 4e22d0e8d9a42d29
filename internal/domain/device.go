package domain

import (
	"fmt"
	"time"
)

// DeviceStatus device connectivity state
type DeviceStatus string

const (
	DeviceOnline  DeviceStatus = "online"
	DeviceOffline DeviceStatus = "offline"
	DeviceWarning DeviceStatus = "warning"
	DeviceError   DeviceStatus = "error"
)

// DeviceStatuses in display order
var DeviceStatuses = []DeviceStatus{DeviceOnline, DeviceWarning, DeviceOffline, DeviceError}

// ParseDeviceStatus validates a status string
func ParseDeviceStatus(s string) (DeviceStatus, error) {
	switch DeviceStatus(s) {
	case DeviceOnline, DeviceOffline, DeviceWarning, DeviceError:
		return DeviceStatus(s), nil
	}
	return "", fmt.Errorf("invalid device status %q", s)
}

// Device read-only catalog record
type Device struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	Status       DeviceStatus `json:"status"`
	Location     string       `json:"location"`
	Power        float64      `json:"power"` // watts
	Temperature  *float64     `json:"temperature,omitempty"`
	Humidity     *float64     `json:"humidity,omitempty"`
	BatteryLevel *int         `json:"batteryLevel,omitempty"`
	LastUpdate   time.Time    `json:"lastUpdate"`
}
