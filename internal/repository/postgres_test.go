package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

var deviceCols = []string{"device_id", "name", "device_type", "status", "location", "power",
	"temperature", "humidity", "battery_level", "last_update"}

func TestPostgresDevicesRepo_ListDevices(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresDevicesRepo(db, zap.NewNop())

	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(deviceCols).
		AddRow("1", "Smart Thermostat", "Climate Control", "online", "Building A", 85.0, 22.5, 45.0, int64(92), ts).
		AddRow("2", "Camera", "Security", "warning", "Entrance", 120.0, nil, nil, nil, ts)
	mock.ExpectQuery(`SELECT .* FROM iot_devices ORDER BY`).WillReturnRows(rows)

	devices, err := repo.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, domain.DeviceOnline, devices[0].Status)
	require.NotNil(t, devices[0].Temperature)
	assert.Equal(t, 22.5, *devices[0].Temperature)
	require.NotNil(t, devices[0].BatteryLevel)
	assert.Equal(t, 92, *devices[0].BatteryLevel)
	assert.Nil(t, devices[1].Humidity)
	assert.Nil(t, devices[1].BatteryLevel)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDevicesRepo_BadStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresDevicesRepo(db, zap.NewNop())

	rows := sqlmock.NewRows(deviceCols).
		AddRow("1", "X", "T", "exploded", "L", 0.0, nil, nil, nil, time.Now())
	mock.ExpectQuery(`SELECT .* FROM iot_devices`).WillReturnRows(rows)

	_, err := repo.ListDevices(context.Background())
	assert.Error(t, err)
}

func TestPostgresDevicesRepo_GetDeviceNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresDevicesRepo(db, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM iot_devices WHERE device_id = \$1`).
		WithArgs("404").
		WillReturnRows(sqlmock.NewRows(deviceCols))

	_, err := repo.GetDevice(context.Background(), "404")
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var userCols = []string{"user_id", "name", "email", "role", "is_active", "last_login", "avatar"}

func TestPostgresUsersRepo_GetUserByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresUsersRepo(db, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM dashboard_users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("admin@demo.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("demo-admin", "Sarah Johnson", "admin@demo.com", "admin", true, nil, nil))

	u, err := repo.GetUserByEmail(context.Background(), "admin@demo.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Nil(t, u.LastLogin)
	assert.Empty(t, u.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUsersRepo_InvalidRole(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresUsersRepo(db, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM dashboard_users WHERE user_id = \$1`).
		WithArgs("9").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("9", "X", "x@y.z", "root", true, nil, nil))

	_, err := repo.GetUser(context.Background(), "9")
	assert.True(t, errors.Is(err, domain.ErrInvalidRole))
}

func TestPostgresUsersRepo_DeleteUser(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresUsersRepo(db, zap.NewNop())

	mock.ExpectExec(`DELETE FROM dashboard_users WHERE user_id = \$1`).
		WithArgs("4").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM dashboard_users WHERE user_id = \$1`).
		WithArgs("4").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteUser(context.Background(), "4"))
	assert.True(t, errors.Is(repo.DeleteUser(context.Background(), "4"), ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUsersRepo_TouchLastLogin(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPostgresUsersRepo(db, zap.NewNop())

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE dashboard_users SET last_login = \$2 WHERE user_id = \$1`).
		WithArgs("demo-customer", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchLastLogin(context.Background(), "demo-customer", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	devices := SeedDevices(testNow)[:2]
	users := SeedUsers(testNow)[:1]

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS iot_devices`).WillReturnResult(sqlmock.NewResult(0, 0))
	for range devices {
		mock.ExpectExec(`INSERT INTO iot_devices`).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(`INSERT INTO dashboard_users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedPostgres(context.Background(), db, devices, users, zap.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgres_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO iot_devices`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := SeedPostgres(context.Background(), db, SeedDevices(testNow), nil, zap.NewNop())
	assert.ErrorContains(t, err, "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}
