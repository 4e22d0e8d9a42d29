package service

import (
	"context"
	"fmt"
	"sort"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/repository"

	"go.uber.org/zap"
)

const recentDeviceCount = 4

// DashboardService overview page
type DashboardService interface {
	Overview(ctx context.Context) (*OverviewResponse, error)
}

type dashboardService struct {
	devices repository.DevicesRepository
	logger  *zap.Logger
}

func NewDashboardService(devices repository.DevicesRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{devices: devices, logger: logger}
}

type OverviewResponse struct {
	Stats         domain.DashboardStats `json:"stats"`
	RecentDevices []domain.Device       `json:"recentDevices"`
}

func (s *dashboardService) Overview(ctx context.Context) (*OverviewResponse, error) {
	devices, err := s.devices.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	recent := append([]domain.Device(nil), devices...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastUpdate.After(recent[j].LastUpdate)
	})
	if len(recent) > recentDeviceCount {
		recent = recent[:recentDeviceCount]
	}

	return &OverviewResponse{
		Stats:         ComputeStats(devices),
		RecentDevices: recent,
	}, nil
}

// ComputeStats headline numbers: alerts counts warning and error devices
func ComputeStats(devices []domain.Device) domain.DashboardStats {
	st := domain.DashboardStats{TotalDevices: len(devices)}
	for _, d := range devices {
		switch d.Status {
		case domain.DeviceOnline:
			st.ActiveDevices++
		case domain.DeviceWarning, domain.DeviceError:
			st.Alerts++
		}
		st.PowerConsumption += d.Power
	}
	return st
}
