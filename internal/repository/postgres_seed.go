package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"iot-dashboard/internal/domain"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Schema creates the catalog tables
const Schema = `
CREATE TABLE IF NOT EXISTS iot_devices (
	device_id     TEXT PRIMARY KEY,
	sort_order    INT NOT NULL DEFAULT 0,
	name          TEXT NOT NULL,
	device_type   TEXT NOT NULL,
	status        TEXT NOT NULL CHECK (status IN ('online', 'offline', 'warning', 'error')),
	location      TEXT NOT NULL,
	power         DOUBLE PRECISION NOT NULL DEFAULT 0,
	temperature   DOUBLE PRECISION,
	humidity      DOUBLE PRECISION,
	battery_level INT,
	last_update   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS dashboard_users (
	user_id    TEXT PRIMARY KEY,
	sort_order INT NOT NULL DEFAULT 0,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	role       TEXT NOT NULL CHECK (role IN ('super-admin', 'admin', 'customer')),
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	last_login TIMESTAMPTZ,
	avatar     TEXT
);`

const upsertDevice = `
INSERT INTO iot_devices (device_id, sort_order, name, device_type, status, location, power,
	temperature, humidity, battery_level, last_update)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (device_id) DO UPDATE SET
	sort_order = EXCLUDED.sort_order, name = EXCLUDED.name, device_type = EXCLUDED.device_type,
	status = EXCLUDED.status, location = EXCLUDED.location, power = EXCLUDED.power,
	temperature = EXCLUDED.temperature, humidity = EXCLUDED.humidity,
	battery_level = EXCLUDED.battery_level, last_update = EXCLUDED.last_update`

const upsertUser = `
INSERT INTO dashboard_users (user_id, sort_order, name, email, role, is_active, last_login, avatar)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
	sort_order = EXCLUDED.sort_order, name = EXCLUDED.name, email = EXCLUDED.email,
	role = EXCLUDED.role, is_active = EXCLUDED.is_active, last_login = EXCLUDED.last_login,
	avatar = EXCLUDED.avatar`

// SeedPostgres creates the schema and upserts the catalog in one transaction
func SeedPostgres(ctx context.Context, db *sql.DB, devices []domain.Device, users []domain.User, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for n, d := range devices {
		if _, err := tx.ExecContext(ctx, upsertDevice,
			d.ID, n, d.Name, d.Type, string(d.Status), d.Location, d.Power,
			nullFloat(d.Temperature), nullFloat(d.Humidity), nullInt(d.BatteryLevel), d.LastUpdate,
		); err != nil {
			return fmt.Errorf("failed to upsert device %s: %w", d.ID, describePQ(err))
		}
	}
	for n, u := range users {
		var lastLogin pq.NullTime
		if u.LastLogin != nil {
			lastLogin = pq.NullTime{Time: *u.LastLogin, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, upsertUser,
			u.ID, n, u.Name, u.Email, u.Role.String(), u.IsActive, lastLogin,
			sql.NullString{String: u.Avatar, Valid: u.Avatar != ""},
		); err != nil {
			return fmt.Errorf("failed to upsert user %s: %w", u.ID, describePQ(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	logger.Info("Seeded catalog",
		zap.Int("devices", len(devices)),
		zap.Int("users", len(users)),
	)
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// describePQ adds the constraint name to PostgreSQL errors
func describePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint != "" {
		return fmt.Errorf("%w (constraint %s)", err, pqErr.Constraint)
	}
	return err
}
