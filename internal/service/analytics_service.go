package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/repository"
	"iot-dashboard/internal/store"

	"go.uber.org/zap"
)

// Report ranges
const (
	Range24h = "24h"
	Range7d  = "7d"
	Range30d = "30d"
	Range90d = "90d"
)

// Ranges in display order
var Ranges = []string{Range24h, Range7d, Range30d, Range90d}

const analyticsCacheTTL = 30 * time.Second

type energyFixture struct {
	current, previous float64
	points            []domain.EnergyPoint
}

// energyFixtures kWh per bucket; telemetry is not collected so the series is static
var energyFixtures = map[string]energyFixture{
	Range24h: {current: 1834.6, previous: 1792.1, points: []domain.EnergyPoint{
		{Label: "00:00", Value: 212}, {Label: "04:00", Value: 188}, {Label: "08:00", Value: 341},
		{Label: "12:00", Value: 402}, {Label: "16:00", Value: 386}, {Label: "20:00", Value: 305.6},
	}},
	Range7d: {current: 12847.3, previous: 11923.8, points: []domain.EnergyPoint{
		{Label: "Mon", Value: 1850}, {Label: "Tue", Value: 1920}, {Label: "Wed", Value: 1780},
		{Label: "Thu", Value: 1950}, {Label: "Fri", Value: 2100}, {Label: "Sat", Value: 1980},
		{Label: "Sun", Value: 2267},
	}},
	Range30d: {current: 52015.6, previous: 50122.4, points: []domain.EnergyPoint{
		{Label: "W1", Value: 12847.3}, {Label: "W2", Value: 13102.5},
		{Label: "W3", Value: 12655.0}, {Label: "W4", Value: 13410.8},
	}},
	Range90d: {current: 153190.7, previous: 148402.3, points: []domain.EnergyPoint{
		{Label: "M1", Value: 49870.2}, {Label: "M2", Value: 51304.9}, {Label: "M3", Value: 52015.6},
	}},
}

// AnalyticsService analytics page
type AnalyticsService interface {
	Report(ctx context.Context, rng string) (*domain.AnalyticsReport, error)
}

type analyticsService struct {
	devices repository.DevicesRepository
	cache   store.KV
	logger  *zap.Logger
}

func NewAnalyticsService(devices repository.DevicesRepository, cache store.KV, logger *zap.Logger) AnalyticsService {
	return &analyticsService{devices: devices, cache: cache, logger: logger}
}

func analyticsKey(rng string) string { return "analytics:" + rng }

// Report builds or serves from cache the report for rng; "" means 7d
func (s *analyticsService) Report(ctx context.Context, rng string) (*domain.AnalyticsReport, error) {
	if rng == "" {
		rng = Range7d
	}
	fixture, ok := energyFixtures[rng]
	if !ok {
		return nil, fmt.Errorf("%w: unknown range %q", ErrInvalidArgument, rng)
	}

	var cached domain.AnalyticsReport
	err := store.GetJSON(ctx, s.cache, analyticsKey(rng), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, store.ErrMiss) {
		s.logger.Warn("Analytics cache read failed", zap.String("range", rng), zap.Error(err))
	}

	devices, err := s.devices.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	report := &domain.AnalyticsReport{
		Range:             rng,
		EnergyConsumption: energySeries(fixture),
		DeviceUtilization: StatusDistribution(devices),
		Environmental:     Environmental(devices),
	}
	if err := store.SetJSON(ctx, s.cache, analyticsKey(rng), report, analyticsCacheTTL); err != nil {
		s.logger.Warn("Analytics cache write failed", zap.String("range", rng), zap.Error(err))
	}
	return report, nil
}

func energySeries(f energyFixture) domain.EnergySeries {
	change := 0.0
	if f.previous != 0 {
		change = round1((f.current - f.previous) / f.previous * 100)
	}
	trend := "flat"
	switch {
	case change > 0:
		trend = "up"
	case change < 0:
		trend = "down"
	}
	return domain.EnergySeries{
		Current:  f.current,
		Previous: f.previous,
		Change:   change,
		Trend:    trend,
		Data:     append([]domain.EnergyPoint(nil), f.points...),
	}
}

// StatusDistribution share of each status in percent, one decimal
func StatusDistribution(devices []domain.Device) domain.StatusDistribution {
	dist := domain.StatusDistribution{Total: len(devices)}
	if len(devices) == 0 {
		return dist
	}
	counts := map[domain.DeviceStatus]int{}
	for _, d := range devices {
		counts[d.Status]++
	}
	pct := func(st domain.DeviceStatus) float64 {
		return round1(float64(counts[st]) / float64(len(devices)) * 100)
	}
	dist.Online = pct(domain.DeviceOnline)
	dist.Warning = pct(domain.DeviceWarning)
	dist.Offline = pct(domain.DeviceOffline)
	dist.Error = pct(domain.DeviceError)
	return dist
}

// Environmental averages over devices that report readings
func Environmental(devices []domain.Device) domain.EnvironmentalSummary {
	var tempSum, humSum float64
	var tempN, humN int
	for _, d := range devices {
		if d.Temperature != nil {
			tempSum += *d.Temperature
			tempN++
		}
		if d.Humidity != nil {
			humSum += *d.Humidity
			humN++
		}
	}
	out := domain.EnvironmentalSummary{Samples: tempN}
	if tempN > 0 {
		out.AvgTemperature = round1(tempSum / float64(tempN))
	}
	if humN > 0 {
		out.AvgHumidity = round1(humSum / float64(humN))
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
