package repository

import (
	"context"
	"errors"
	"time"

	"iot-dashboard/internal/domain"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrUserNotFound   = errors.New("user not found")
)

// DevicesRepository read-only device catalog
type DevicesRepository interface {
	ListDevices(ctx context.Context) ([]domain.Device, error)
	GetDevice(ctx context.Context, id string) (domain.Device, error)
}

// UsersRepository user catalog. Listing keeps insertion order.
type UsersRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
