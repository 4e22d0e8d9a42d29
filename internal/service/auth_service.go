package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/store"

	"go.uber.org/zap"
)

// AuthService mock login: a role picks a demo account, no credentials involved
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*Session, error)
}

type authService struct {
	users     repository.UsersRepository
	sessions  *SessionRegistry
	tokens    *TokenManager
	publisher store.Publisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewAuthService(users repository.UsersRepository, sessions *SessionRegistry, tokens *TokenManager, publisher store.Publisher, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

// LoginRequest Locale is already negotiated by the caller
type LoginRequest struct {
	Role   domain.Role
	Locale string
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
	Locale    string      `json:"locale"`
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRole, uint8(req.Role))
	}

	user, err := s.users.GetUserByEmail(ctx, repository.PersonaEmail(req.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to load demo account for %s: %w", req.Role, err)
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	sess, err := s.sessions.Create(user, req.Locale)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.Issue(sess.ID, user.Role)
	if err != nil {
		s.sessions.Remove(sess.ID)
		return nil, err
	}

	s.publish(ctx, store.Event{
		Type:    store.EventSessionStarted,
		ActorID: user.ID,
		Role:    user.Role.String(),
		Attrs:   map[string]string{"session_id": sess.ID, "locale": sess.Locale()},
		At:      now,
	})

	return &LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		SessionID: sess.ID,
		User:      user,
		Locale:    sess.Locale(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	sess, ok := s.sessions.Remove(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.publish(ctx, store.Event{
		Type:    store.EventSessionEnded,
		ActorID: sess.User.ID,
		Role:    sess.User.Role.String(),
		Attrs:   map[string]string{"session_id": sessionID},
		At:      s.now(),
	})
	return nil
}

// Authenticate maps a bearer token to its live session
func (s *authService) Authenticate(_ context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Role().String() != claims.Role {
		return nil, ErrTokenInvalid
	}
	return sess, nil
}

func (s *authService) publish(ctx context.Context, ev store.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to publish event", zap.String("type", ev.Type), zap.Error(err))
	}
}
