package domain

import (
	"fmt"
	"time"
)

// NotificationType severity of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

// ParseNotificationType validates a notification type string
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotificationInfo, NotificationWarning, NotificationError, NotificationSuccess:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("invalid notification type %q", s)
}

// Notification read state only moves from unread to read
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	IsRead    bool             `json:"isRead"`
}
