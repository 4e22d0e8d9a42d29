package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	access   *access.Controller
	catalog  *i18n.Catalog
	devices  *repository.MemoryDevicesRepo
	users    *repository.MemoryUsersRepo
	sessions *SessionRegistry
	tokens   *TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ac, err := access.NewController(access.DefaultDestinations())
	require.NoError(t, err)
	catalog, err := i18n.Load(i18n.English)
	require.NoError(t, err)

	return &testEnv{
		access:  ac,
		catalog: catalog,
		devices: repository.NewMemoryDevicesRepo(repository.SeedDevices(testNow)),
		users:   repository.NewMemoryUsersRepo(repository.SeedUsers(testNow)),
		sessions: NewSessionRegistry(ac, catalog, SessionOptions{
			TTL:            time.Hour,
			ChatReplyDelay: 10 * time.Millisecond,
		}, zap.NewNop()),
		tokens: NewTokenManager([]byte("test-secret-0123456789"), time.Hour),
	}
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, ev store.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// recordingPublisher keeps every event
type recordingPublisher struct {
	mu     sync.Mutex
	events []store.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev store.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
