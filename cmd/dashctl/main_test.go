package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/client"
	httpapi "iot-dashboard/internal/http"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/service"
	"iot-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) string {
	t.Helper()
	logger := zap.NewNop()
	now := time.Now()
	ac, err := access.NewController(access.DefaultDestinations())
	require.NoError(t, err)
	catalog, err := i18n.Load(i18n.English)
	require.NoError(t, err)

	devices := repository.NewMemoryDevicesRepo(repository.SeedDevices(now))
	users := repository.NewMemoryUsersRepo(repository.SeedUsers(now))
	sessions := service.NewSessionRegistry(ac, catalog, service.SessionOptions{TTL: time.Hour}, logger)
	t.Cleanup(sessions.CloseAll)
	tokens := service.NewTokenManager([]byte("dashctl-test"), time.Hour)

	api := httpapi.NewAPI(httpapi.Deps{
		Access:    ac,
		Catalog:   catalog,
		Auth:      service.NewAuthService(users, sessions, tokens, store.NopPublisher{}, logger),
		Devices:   service.NewDeviceService(devices, catalog, logger),
		Users:     service.NewUserService(users, store.NopPublisher{}, logger),
		Dashboard: service.NewDashboardService(devices, logger),
		Analytics: service.NewAnalyticsService(devices, store.NewMemoryKV(), logger),
		Security:  service.NewSecurityService(ac),
		Settings:  service.NewSettingsService(catalog, logger),
	}, logger)
	srv := httptest.NewServer(httpapi.NewHandler(api, nil, logger))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNav_Customer(t *testing.T) {
	url := newServer(t)
	out, err := run(t, "nav", "--server", url, "--role", "customer")
	require.NoError(t, err)
	assert.Contains(t, out, "devices")
	assert.NotContains(t, out, "users")
}

func TestDevices_StatusFilter(t *testing.T) {
	url := newServer(t)
	out, err := run(t, "devices", "--server", url, "--status", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Air Quality Monitor")
	assert.NotContains(t, out, "Smart Lock")
	assert.Contains(t, out, "1 of 6 devices")
}

func TestUsers_DeniedForCustomer(t *testing.T) {
	url := newServer(t)
	_, err := run(t, "users", "--server", url, "--role", "customer")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, httpapi.ResultAccessDenied, apiErr.Code)
}

func TestNotifications_ReadAll(t *testing.T) {
	url := newServer(t)
	out, err := run(t, "notifications", "--server", url, "--filter", "unread")
	require.NoError(t, err)
	assert.Contains(t, out, "5 unread of 8")

	out, err = run(t, "notifications", "--server", url, "--read-all")
	require.NoError(t, err)
	assert.Contains(t, out, "0 unread of 8")
}

func TestLogin_BadRole(t *testing.T) {
	url := newServer(t)
	_, err := run(t, "nav", "--server", url, "--role", "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login as root")
}
