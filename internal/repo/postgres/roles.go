package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sikmo/useradmin/internal/domain/role"
	"github.com/sikmo/useradmin/internal/observability"
)

// RolesRepo is read-only: roles are managed outside this application.
type RolesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRolesRepo(pool *pgxpool.Pool, prom *observability.Prom) *RolesRepo {
	return &RolesRepo{pool: pool, prom: prom}
}

func (r *RolesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *RolesRepo) List(ctx context.Context) ([]role.Role, error) {
	var output []role.Role

	err := r.observe("roles.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT role_id, name FROM roles ORDER BY role_id`)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]role.Role, 0)

		for rows.Next() {
			var ro role.Role

			err = rows.Scan(&ro.ID, &ro.Name)

			if err != nil {
				return err
			}

			output = append(output, ro)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// ListForUser returns the association rows for one user. No rows is not an
// error: an unknown user simply has no assignments.
func (r *RolesRepo) ListForUser(ctx context.Context, userID int64) ([]role.UserRole, error) {
	var output []role.UserRole

	err := r.observe("roles.list_for_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT user_id, role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]role.UserRole, 0)

		for rows.Next() {
			var ur role.UserRole

			err = rows.Scan(&ur.UserID, &ur.RoleID)

			if err != nil {
				return err
			}

			output = append(output, ur)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}
