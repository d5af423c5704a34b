package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pawpairs/internal/domain/users"
	"pawpairs/internal/platform/apperr"
)

const usersEmailKey = "users_email_key"

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, city, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.City, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, usersEmailKey) {
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, city = $4
		WHERE id = $1
	`, u.ID, u.FirstName, u.LastName, u.City)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, apperr.NotFound("user")
	}

	var u users.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, city, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.City, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, apperr.NotFound("user")
		}
		return users.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, skip, take int) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, city, created_at
		FROM users
		ORDER BY email ASC
		OFFSET $1 LIMIT $2
	`, skip, take)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.City, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
