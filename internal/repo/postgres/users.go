package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sikmo/useradmin/internal/domain/user"
	"github.com/sikmo/useradmin/internal/observability"
)

// UsersRepo reads users with plain queries and writes through the
// AddUser/UpdateUser/DeleteUser stored procedures. Parameter order on the
// procedures is an external contract and must not change.
type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_username", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT user_id, username, password_hash, surname, firstname, email, role_id
	         FROM users
	         WHERE username = $1`,
			username,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.Surname,
			&u.Firstname,
			&u.Email,
			&u.RoleID,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT user_id, username, password_hash, surname, firstname, email, role_id
	         FROM users
	         WHERE user_id = $1`,
			id,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.Surname,
			&u.Firstname,
			&u.Email,
			&u.RoleID,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var output []user.User

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT user_id, username, password_hash, surname, firstname, email, role_id
			FROM users
			ORDER BY user_id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]user.User, 0)

		for rows.Next() {
			var u user.User

			err = rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Surname, &u.Firstname, &u.Email, &u.RoleID)

			if err != nil {
				return err
			}

			output = append(output, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// Create delegates to AddUser(username, surname, firstname, email,
// passwordHash, roleID).
func (r *UsersRepo) Create(ctx context.Context, username, surname, firstname, email, passwordHash string, roleID int64) error {
	return r.observe("users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`CALL AddUser($1, $2, $3, $4, $5, $6)`,
			username, surname, firstname, email, passwordHash, roleID)

		return err
	})
}

// Update delegates to UpdateUser(id, surname, firstname, username, email,
// roleID). The role parameter is an integer id on both write paths; the
// historical string-typed role on UpdateUser was dropped on purpose.
func (r *UsersRepo) Update(ctx context.Context, id int64, surname, firstname, username, email string, roleID int64) error {
	return r.observe("users.update", func() error {
		_, err := r.pool.Exec(ctx,
			`CALL UpdateUser($1, $2, $3, $4, $5, $6)`,
			id, surname, firstname, username, email, roleID)

		return err
	})
}

// Delete delegates to DeleteUser(id). A missing id is a procedure-level
// no-op and reports success; only transport/SQL failures return an error.
func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("users.delete", func() error {
		_, err := r.pool.Exec(ctx, `CALL DeleteUser($1)`, id)

		return err
	})
}
