package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSeedDevices(t *testing.T) {
	devices := SeedDevices(testNow)
	require.Len(t, devices, 6)
	assert.Equal(t, "Smart Thermostat Living Room", devices[0].Name)
	assert.Equal(t, testNow.Add(-time.Minute), devices[0].LastUpdate)
	assert.Nil(t, devices[1].Temperature)
	require.NotNil(t, devices[5].BatteryLevel)
	assert.Equal(t, 15, *devices[5].BatteryLevel)
}

func TestSeedNotifications(t *testing.T) {
	ns := SeedNotifications(testNow)
	require.Len(t, ns, 8)
	unread := 0
	for _, n := range ns {
		if !n.IsRead {
			unread++
		}
	}
	assert.Equal(t, 5, unread)
}

func TestPersonaEmail(t *testing.T) {
	assert.Equal(t, "customer@demo.com", PersonaEmail(domain.RoleCustomer))
	assert.Panics(t, func() { PersonaEmail(domain.Role(0)) })
}

func TestIsDemoAccount(t *testing.T) {
	demo := 0
	for _, u := range SeedUsers(testNow) {
		if IsDemoAccount(u) {
			demo++
			assert.Equal(t, PersonaEmail(u.Role), u.Email)
		}
	}
	assert.Equal(t, 3, demo)
	assert.False(t, IsDemoAccount(domain.User{ID: "x", Email: "customer@demo.com", Role: domain.RoleAdmin}))
	assert.False(t, IsDemoAccount(domain.User{}))
}

func TestMemoryDevicesRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDevicesRepo(SeedDevices(testNow))

	list, err := repo.ListDevices(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)

	list[0].Name = "mutated"
	d, err := repo.GetDevice(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Smart Thermostat Living Room", d.Name)

	_, err = repo.GetDevice(ctx, "99")
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
}

func TestMemoryUsersRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUsersRepo(SeedUsers(testNow))

	u, err := repo.GetUserByEmail(ctx, "ADMIN@demo.com")
	require.NoError(t, err)
	assert.Equal(t, "demo-admin", u.ID)
	assert.Nil(t, u.LastLogin)

	require.NoError(t, repo.TouchLastLogin(ctx, u.ID, testNow))
	u, err = repo.GetUser(ctx, "demo-admin")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, testNow, *u.LastLogin)

	require.NoError(t, repo.DeleteUser(ctx, "4"))
	_, err = repo.GetUser(ctx, "4")
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, errors.Is(repo.DeleteUser(ctx, "4"), ErrUserNotFound))

	list, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 8)
	assert.Equal(t, "5", list[3].ID)
}
