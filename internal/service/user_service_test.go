package service

import (
	"context"
	"errors"
	"testing"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func actor(t *testing.T, env *testEnv, id string) domain.User {
	u, err := env.users.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestUserService_ListRowActions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, store.NopPublisher{}, zap.NewNop())
	admin := actor(t, env, "demo-admin")

	resp, err := svc.ListUsers(context.Background(), ListUsersRequest{Actor: admin, Search: "company.com"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 6)
	assert.Equal(t, []domain.Role{domain.RoleCustomer}, resp.AssignableRoles)
	assert.False(t, resp.CanManageAdmins)
	assert.Equal(t, 4, resp.ActiveCount)

	for _, row := range resp.Items {
		assert.True(t, row.CanEdit)
		assert.Equal(t, row.Role == domain.RoleCustomer, row.CanDelete, row.Name)
	}
}

func TestUserService_ListFiltersRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, store.NopPublisher{}, zap.NewNop())
	sa := actor(t, env, "demo-super-admin")

	resp, err := svc.ListUsers(context.Background(), ListUsersRequest{Actor: sa, Role: "customer"})
	require.NoError(t, err)
	for _, row := range resp.Items {
		assert.Equal(t, domain.RoleCustomer, row.Role)
		assert.Equal(t, row.ID != "demo-customer", row.CanDelete, row.ID)
	}
	assert.Len(t, resp.Items, 4)

	resp, err = svc.ListUsers(context.Background(), ListUsersRequest{Actor: sa, Search: "superadmin@"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].CanDelete, "own row is never deletable")

	_, err = svc.ListUsers(context.Background(), ListUsersRequest{Actor: sa, Role: "root"})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	pub := &recordingPublisher{}
	svc := NewUserService(env.users, pub, zap.NewNop())
	ctx := context.Background()
	admin := actor(t, env, "demo-admin")
	sa := actor(t, env, "demo-super-admin")

	err := svc.DeleteUser(ctx, DeleteUserRequest{Actor: admin, UserID: "3"})
	assert.True(t, errors.Is(err, access.ErrPermissionDenied))

	require.NoError(t, svc.DeleteUser(ctx, DeleteUserRequest{Actor: admin, UserID: "4"}))
	_, err = env.users.GetUser(ctx, "4")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	err = svc.DeleteUser(ctx, DeleteUserRequest{Actor: admin, UserID: "4"})
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	require.NoError(t, svc.DeleteUser(ctx, DeleteUserRequest{Actor: sa, UserID: "3"}))

	err = svc.DeleteUser(ctx, DeleteUserRequest{Actor: sa, UserID: sa.ID})
	assert.True(t, errors.Is(err, ErrSelfDelete))

	err = svc.DeleteUser(ctx, DeleteUserRequest{Actor: sa})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Equal(t, []string{store.EventUserDeleted, store.EventUserDeleted}, pub.types())
}

func TestUserService_CustomerCannotDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, store.NopPublisher{}, zap.NewNop())
	c := actor(t, env, "demo-customer")

	err := svc.DeleteUser(context.Background(), DeleteUserRequest{Actor: c, UserID: "5"})
	assert.True(t, errors.Is(err, access.ErrPermissionDenied))
}

func TestUserService_DemoAccountsNotDeletable(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, store.NopPublisher{}, zap.NewNop())
	ctx := context.Background()
	admin := actor(t, env, "demo-admin")
	sa := actor(t, env, "demo-super-admin")

	err := svc.DeleteUser(ctx, DeleteUserRequest{Actor: admin, UserID: "demo-customer"})
	assert.True(t, errors.Is(err, ErrDemoAccount))
	err = svc.DeleteUser(ctx, DeleteUserRequest{Actor: sa, UserID: "demo-admin"})
	assert.True(t, errors.Is(err, ErrDemoAccount))

	for _, id := range []string{"demo-customer", "demo-admin"} {
		_, err := env.users.GetUser(ctx, id)
		assert.NoError(t, err, id)
	}

	resp, err := svc.ListUsers(ctx, ListUsersRequest{Actor: sa, Search: "@demo.com"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	for _, row := range resp.Items {
		assert.False(t, row.CanDelete, row.ID)
	}
}
