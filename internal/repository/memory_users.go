package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"iot-dashboard/internal/domain"
)

// MemoryUsersRepo supports user management when DB is disabled
type MemoryUsersRepo struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewMemoryUsersRepo(seed []domain.User) *MemoryUsersRepo {
	return &MemoryUsersRepo{users: append([]domain.User(nil), seed...)}
}

func (r *MemoryUsersRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.users...), nil
}

func (r *MemoryUsersRepo) find(match func(domain.User) bool) (int, bool) {
	for i, u := range r.users {
		if match(u) {
			return i, true
		}
	}
	return -1, false
}

func (r *MemoryUsersRepo) GetUser(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.find(func(u domain.User) bool { return u.ID == id }); ok {
		return r.users[i], nil
	}
	return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

func (r *MemoryUsersRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) }); ok {
		return r.users[i], nil
	}
	return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, email)
}

func (r *MemoryUsersRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(func(u domain.User) bool { return u.ID == id })
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	r.users = append(r.users[:i:i], r.users[i+1:]...)
	return nil
}

func (r *MemoryUsersRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(func(u domain.User) bool { return u.ID == id })
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	r.users[i].LastLogin = &at
	return nil
}
