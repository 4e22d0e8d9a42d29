package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/chat"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/notification"
	"iot-dashboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionOptions how new sessions are built
type SessionOptions struct {
	TTL            time.Duration
	ChatReplyDelay time.Duration
	Now            func() time.Time
}

// SessionRegistry in-memory session table keyed by uuid
type SessionRegistry struct {
	access  *access.Controller
	catalog *i18n.Catalog
	opts    SessionOptions
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionRegistry(ac *access.Controller, catalog *i18n.Catalog, opts SessionOptions, logger *zap.Logger) *SessionRegistry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ChatReplyDelay <= 0 {
		opts.ChatReplyDelay = chat.DefaultReplyDelay
	}
	return &SessionRegistry{
		access:   ac,
		catalog:  catalog,
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session for user. The notification list and chat panel are fresh copies.
func (r *SessionRegistry) Create(user domain.User, locale string) (*Session, error) {
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRole, uint8(user.Role))
	}
	if !r.catalog.Supports(locale) {
		locale = r.catalog.Fallback()
	}

	now := r.opts.Now()
	s := &Session{
		ID:            uuid.NewString(),
		User:          user,
		CreatedAt:     now,
		access:        r.access,
		notifications: notification.NewCenter(repository.SeedNotifications(now)),
		chat: chat.NewPanel(r.catalog.ChatScript(locale), chat.Options{
			ReplyDelay: r.opts.ChatReplyDelay,
			Now:        r.opts.Now,
			Logger:     r.logger,
		}),
		locale:      locale,
		currentPage: domain.DestDashboard,
		settings:    domain.DefaultSettings(user, locale),
	}
	if r.opts.TTL > 0 {
		s.ExpiresAt = now.Add(r.opts.TTL)
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("Session started",
		zap.String("session_id", s.ID),
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()),
		zap.String("locale", locale),
	)
	return s, nil
}

// Get returns a live session. Expired sessions are removed on sight.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if s.expired(r.opts.Now()) {
		r.Remove(id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove deletes and closes the session
func (r *SessionRegistry) Remove(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
		r.logger.Info("Session ended", zap.String("session_id", id))
	}
	return s, ok
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many went
func (r *SessionRegistry) Sweep() int {
	now := r.opts.Now()
	var expired []string
	r.mu.RLock()
	for id, s := range r.sessions {
		if s.expired(now) {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range expired {
		r.Remove(id)
	}
	return len(expired)
}

// RunJanitor sweeps every interval until ctx is done
func (r *SessionRegistry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("Swept expired sessions", zap.Int("count", n))
			}
		}
	}
}

// CloseAll ends every session, used on shutdown
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
