package service

import (
	"context"
	"fmt"

	"iot-dashboard/internal/access"
	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/i18n"
	"iot-dashboard/internal/query"
	"iot-dashboard/internal/repository"

	"go.uber.org/zap"
)

// DeviceService read-only device catalog views
type DeviceService interface {
	ListDevices(ctx context.Context, req ListDevicesRequest) (*ListDevicesResponse, error)
	GetDevice(ctx context.Context, id string) (*domain.Device, error)
	ExportDevices(ctx context.Context, req ListDevicesRequest) ([]byte, error)
}

type deviceService struct {
	devices repository.DevicesRepository
	catalog *i18n.Catalog
	logger  *zap.Logger
}

func NewDeviceService(devices repository.DevicesRepository, catalog *i18n.Catalog, logger *zap.Logger) DeviceService {
	return &deviceService{devices: devices, catalog: catalog, logger: logger}
}

// ListDevicesRequest Status is a device status or "all"
type ListDevicesRequest struct {
	Role   domain.Role
	Locale string
	Search string
	Status string
}

type ListDevicesResponse struct {
	Items        []domain.Device             `json:"items"`
	Total        int                         `json:"total"`
	CatalogTotal int                         `json:"catalogTotal"`
	StatusCounts map[domain.DeviceStatus]int `json:"statusCounts"`
	CanManage    bool                        `json:"canManage"`
}

func (s *deviceService) filtered(ctx context.Context, req ListDevicesRequest) ([]domain.Device, []domain.Device, error) {
	cat, err := query.ParseCategory(req.Status, domain.ParseDeviceStatus)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	all, err := s.devices.ListDevices(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return all, query.Filter(all, req.Search, cat, query.DeviceSpec), nil
}

func (s *deviceService) ListDevices(ctx context.Context, req ListDevicesRequest) (*ListDevicesResponse, error) {
	all, items, err := s.filtered(ctx, req)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.DeviceStatus]int, len(domain.DeviceStatuses))
	for _, st := range domain.DeviceStatuses {
		counts[st] = 0
	}
	for _, d := range all {
		counts[d.Status]++
	}

	return &ListDevicesResponse{
		Items:        items,
		Total:        len(items),
		CatalogTotal: len(all),
		StatusCounts: counts,
		CanManage:    access.CanManageDevices(req.Role),
	}, nil
}

func (s *deviceService) GetDevice(ctx context.Context, id string) (*domain.Device, error) {
	d, err := s.devices.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *deviceService) ExportDevices(ctx context.Context, req ListDevicesRequest) ([]byte, error) {
	_, items, err := s.filtered(ctx, req)
	if err != nil {
		return nil, err
	}
	label := func(key string) string { return s.catalog.Text(req.Locale, key) }
	data, err := GenerateDeviceExport(items, label)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Exported devices", zap.Int("rows", len(items)), zap.String("locale", req.Locale))
	return data, nil
}
