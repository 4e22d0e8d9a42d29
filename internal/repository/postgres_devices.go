package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"iot-dashboard/internal/domain"

	"go.uber.org/zap"
)

// PostgresDevicesRepo device catalog in the iot_devices table
type PostgresDevicesRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresDevicesRepo(db *sql.DB, logger *zap.Logger) *PostgresDevicesRepo {
	return &PostgresDevicesRepo{db: db, logger: logger}
}

const deviceColumns = `
	device_id, name, device_type, status, location, power,
	temperature, humidity, battery_level, last_update`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (domain.Device, error) {
	var (
		d       domain.Device
		status  string
		temp    sql.NullFloat64
		hum     sql.NullFloat64
		battery sql.NullInt64
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Type, &status, &d.Location, &d.Power,
		&temp, &hum, &battery, &d.LastUpdate); err != nil {
		return domain.Device{}, err
	}
	st, err := domain.ParseDeviceStatus(status)
	if err != nil {
		return domain.Device{}, fmt.Errorf("device %s: %w", d.ID, err)
	}
	d.Status = st
	if temp.Valid {
		d.Temperature = &temp.Float64
	}
	if hum.Valid {
		d.Humidity = &hum.Float64
	}
	if battery.Valid {
		b := int(battery.Int64)
		d.BatteryLevel = &b
	}
	return d, nil
}

func (r *PostgresDevicesRepo) ListDevices(ctx context.Context) ([]domain.Device, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+deviceColumns+` FROM iot_devices ORDER BY sort_order, device_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	out := []domain.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDevicesRepo) GetDevice(ctx context.Context, id string) (domain.Device, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+deviceColumns+` FROM iot_devices WHERE device_id = $1`, id)
	d, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("failed to get device %s: %w", id, err)
	}
	return d, nil
}
