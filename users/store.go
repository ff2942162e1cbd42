// Package users persists accounts and serves the user directory routes.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/db"
)

// Store is the Postgres-backed credential store.
type Store struct {
	q      db.Querier
	hasher *auth.Hasher
}

var _ auth.CredentialStore = (*Store)(nil)

func NewStore(q db.Querier, hasher *auth.Hasher) *Store {
	return &Store{q: q, hasher: hasher}
}

// Register hashes the password and inserts the user. join_at and
// last_login_at both start at the insert time.
func (s *Store) Register(ctx context.Context, reg auth.Registration) (*auth.User, error) {
	hashed, err := s.hasher.Hash(ctx, reg.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	query := `
		INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, current_timestamp, current_timestamp)
		RETURNING username, first_name, last_name, phone, join_at, last_login_at
	`
	var u auth.User
	err = s.q.QueryRow(ctx, query, reg.Username, hashed, reg.FirstName, reg.LastName, reg.Phone).Scan(
		&u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt,
	)
	if err != nil {
		if db.PgErrorCode(err) == db.UniqueViolation {
			return nil, apperror.NewConflictError(fmt.Sprintf("username %q is already taken", reg.Username), err)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return &u, nil
}

// Get returns the user's profile.
func (s *Store) Get(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT username, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = $1
	`
	var u auth.User
	err := s.q.QueryRow(ctx, query, username).Scan(
		&u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no such user: %s", username), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &u, nil
}

// ListAll returns every user ordered by username.
func (s *Store) ListAll(ctx context.Context) ([]auth.UserSummary, error) {
	rows, err := s.q.Query(ctx, `SELECT username, first_name, last_name FROM users ORDER BY username`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := []auth.UserSummary{}
	for rows.Next() {
		var u auth.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate users", err)
	}
	return users, nil
}

// TouchLogin sets last_login_at to now.
func (s *Store) TouchLogin(ctx context.Context, username string) error {
	tag, err := s.q.Exec(ctx, `UPDATE users SET last_login_at = current_timestamp WHERE username = $1`, username)
	if err != nil {
		return apperror.NewDatabaseError("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("no such user: %s", username), nil)
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash for username.
func (s *Store) PasswordHash(ctx context.Context, username string) (string, bool, error) {
	var hash string
	err := s.q.QueryRow(ctx, `SELECT password FROM users WHERE username = $1`, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, apperror.NewDatabaseError("failed to load credentials", err)
	}
	return hash, true, nil
}
