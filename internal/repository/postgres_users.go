package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"iot-dashboard/internal/domain"

	"go.uber.org/zap"
)

// PostgresUsersRepo user catalog in the dashboard_users table
type PostgresUsersRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresUsersRepo(db *sql.DB, logger *zap.Logger) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db, logger: logger}
}

const userColumns = ` user_id, name, email, role, is_active, last_login, avatar`

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		role      string
		lastLogin sql.NullTime
		avatar    sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.IsActive, &lastLogin, &avatar); err != nil {
		return domain.User{}, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	u.Role = parsed
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	u.Avatar = avatar.String
	return u, nil
}

func (r *PostgresUsersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+userColumns+` FROM dashboard_users ORDER BY sort_order, user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUsersRepo) getOne(ctx context.Context, where string, arg string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT`+userColumns+` FROM dashboard_users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, arg)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user %s: %w", arg, err)
	}
	return u, nil
}

func (r *PostgresUsersRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, "user_id = $1", id)
}

func (r *PostgresUsersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PostgresUsersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return requireOneRow(res, id)
}

func (r *PostgresUsersRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE dashboard_users SET last_login = $2 WHERE user_id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", id, err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return nil
}
