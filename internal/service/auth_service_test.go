package service

import (
	"context"
	"errors"
	"testing"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_LoginPersonas(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, env.sessions, env.tokens, store.NopPublisher{}, zap.NewNop())
	ctx := context.Background()

	cases := map[domain.Role]string{
		domain.RoleSuperAdmin: "John Smith",
		domain.RoleAdmin:      "Sarah Johnson",
		domain.RoleCustomer:   "Mike Wilson",
	}
	for role, name := range cases {
		resp, err := auth.Login(ctx, LoginRequest{Role: role, Locale: i18n.Farsi})
		require.NoError(t, err, role)
		assert.Equal(t, name, resp.User.Name)
		assert.Equal(t, role, resp.User.Role)
		assert.NotNil(t, resp.User.LastLogin)
		assert.Equal(t, i18n.Farsi, resp.Locale)
		assert.NotEmpty(t, resp.Token)

		sess, err := auth.Authenticate(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.SessionID, sess.ID)
	}

	stored, err := env.users.GetUser(ctx, "demo-admin")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestAuthService_LoginInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, env.sessions, env.tokens, store.NopPublisher{}, zap.NewNop())

	_, err := auth.Login(context.Background(), LoginRequest{Role: domain.Role(0)})
	assert.True(t, errors.Is(err, domain.ErrInvalidRole))
	assert.Equal(t, 0, env.sessions.Len())
}

func TestAuthService_LogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev store.Event) bool {
		return ev.Type == store.EventSessionStarted && ev.Role == "admin"
	})).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev store.Event) bool {
		return ev.Type == store.EventSessionEnded
	})).Return(errors.New("redis down")).Once()

	auth := NewAuthService(env.users, env.sessions, env.tokens, pub, zap.NewNop())
	ctx := context.Background()

	resp, err := auth.Login(ctx, LoginRequest{Role: domain.RoleAdmin, Locale: i18n.English})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, resp.SessionID))
	_, err = auth.Authenticate(ctx, resp.Token)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	err = auth.Logout(ctx, resp.SessionID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	pub.AssertExpectations(t)
}

func TestAuthService_AuthenticateRoleMismatch(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(env.users, env.sessions, env.tokens, store.NopPublisher{}, zap.NewNop())
	ctx := context.Background()

	resp, err := auth.Login(ctx, LoginRequest{Role: domain.RoleCustomer})
	require.NoError(t, err)

	forged, _, err := env.tokens.Issue(resp.SessionID, domain.RoleSuperAdmin)
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, forged)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}
