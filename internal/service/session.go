package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/chat"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/notification"
)

var ErrSessionNotFound = errors.New("session not found")

// Session everything one logged-in user sees. User and Role never change after login;
// every other field moves only through the methods below.
type Session struct {
	ID        string
	User      domain.User
	CreatedAt time.Time
	ExpiresAt time.Time

	access        *access.Controller
	notifications *notification.Center
	chat          *chat.Panel

	mu          sync.RWMutex
	locale      string
	currentPage string
	settings    domain.Settings
	closed      bool
}

// Role of the session user
func (s *Session) Role() domain.Role { return s.User.Role }

func (s *Session) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

func (s *Session) CurrentPage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// Navigate switches the current page. A page the role may not open leaves the current
// page as it was.
func (s *Session) Navigate(page string) error {
	if err := s.access.Guard(s.User.Role, page); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
	return nil
}

// Notifications the session's notification center
func (s *Session) Notifications() *notification.Center { return s.notifications }

func (s *Session) MarkNotificationRead(id string) bool {
	return s.notifications.MarkAsRead(id)
}

func (s *Session) MarkAllNotificationsRead() int {
	return s.notifications.MarkAllAsRead()
}

// Chat the session's assistant panel
func (s *Session) Chat() *chat.Panel { return s.chat }

func (s *Session) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SaveSettings replaces the settings; the saved language becomes the session locale
func (s *Session) SaveSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	if settings.Preferences.Language != "" {
		s.locale = settings.Preferences.Language
	}
}

// Close cancels pending chat replies. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.chat.Close()
}

func (s *Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s (%s, %s)", s.ID, s.User.ID, s.User.Role)
}
