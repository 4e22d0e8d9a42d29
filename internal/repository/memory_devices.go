package repository

import (
	"context"
	"fmt"
	"sync"

	"iot-dashboard/internal/domain"
)

// MemoryDevicesRepo serves the device catalog when DB is disabled
type MemoryDevicesRepo struct {
	mu      sync.RWMutex
	devices []domain.Device
}

func NewMemoryDevicesRepo(seed []domain.Device) *MemoryDevicesRepo {
	return &MemoryDevicesRepo{devices: append([]domain.Device(nil), seed...)}
}

func (r *MemoryDevicesRepo) ListDevices(_ context.Context) ([]domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Device{}, r.devices...), nil
}

func (r *MemoryDevicesRepo) GetDevice(_ context.Context, id string) (domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
}
