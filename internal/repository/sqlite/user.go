package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mjovanc/jobboard/internal/apperror"
	"github.com/mjovanc/jobboard/internal/model"
	"github.com/mjovanc/jobboard/internal/repository"
)

// UserDB implements repository.UserRepository over the shared pool.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user. The id is assigned by the store and written
// back to user, along with both timestamps. A duplicate email surfaces as a
// conflict rather than a generic storage failure.
func (r *UserDB) Create(ctx context.Context, user *model.User) error {
	ts := now()
	user.CreatedAt = ts
	user.UpdatedAt = ts

	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.Password,
		user.Role.String(),
		encodeTime(user.CreatedAt),
		encodeTime(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("user already exists with email %s", user.Email))
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by id. Absence is apperror.ErrNotFound; every
// other failure, including a row that cannot be decoded, is a storage error.
func (r *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password, role, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return user, nil
}

// List returns up to limit users starting at offset, in natural row order.
// Callers must not rely on any particular ordering.
func (r *UserDB) List(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, email, password, role, created_at, updated_at
		 FROM users LIMIT ? OFFSET ?`,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, opts.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// Count returns the total number of users, independent of pagination.
func (r *UserDB) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return count, nil
}

// Update persists an already-merged user record. updated_at is refreshed
// unconditionally; created_at is immutable.
func (r *UserDB) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password = ?, role = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name,
		user.Email,
		user.Password,
		user.Role.String(),
		encodeTime(user.UpdatedAt),
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("user already exists with email %s", user.Email))
		}
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

// Delete removes a user. Deleting an absent id succeeds with zero rows
// affected. Dependent applications and jobs are left in place.
func (r *UserDB) Delete(ctx context.Context, id int64) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u                    model.User
		role                 string
		createdAt, updatedAt string
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if u.Role, err = model.ParseUserRole(role); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}
