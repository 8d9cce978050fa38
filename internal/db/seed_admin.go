package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sikmo/useradmin/internal/config"
	"github.com/sikmo/useradmin/internal/security"
)

// EnsureAdminUser seeds the first login account so a fresh install is
// reachable. Idempotent: an existing username wins over the config.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT user_id FROM users WHERE username = $1`, cfg.AdminUsername).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	email := cfg.AdminEmail

	if email == "" {
		email = cfg.AdminUsername + "@localhost"
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, surname, firstname, email, role_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		`,
		cfg.AdminUsername, hash, "Admin", "Admin", email, cfg.AdminRoleID,
	)

	return err
}
