// Package messages stores messages, enforces who may read or acknowledge
// them, and serves the /messages routes.
package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/db"
)

// Repository is the persistence used by Service.
type Repository interface {
	Create(ctx context.Context, from, to, body string) (*Message, error)
	Get(ctx context.Context, id int64) (*MessageDetail, error)
	MarkRead(ctx context.Context, id int64) (*ReadReceipt, error)
	ListTo(ctx context.Context, username string) ([]ReceivedMessage, error)
	ListFrom(ctx context.Context, username string) ([]SentMessage, error)
}

// Store is the Postgres Repository.
type Store struct {
	q db.Querier
}

var _ Repository = (*Store)(nil)

func NewStore(q db.Querier) *Store {
	return &Store{q: q}
}

// Create inserts a message. A recipient that does not exist is a NotFoundError.
func (s *Store) Create(ctx context.Context, from, to, body string) (*Message, error) {
	query := `
		INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, current_timestamp)
		RETURNING id, from_username, to_username, body, sent_at
	`
	var m Message
	err := s.q.QueryRow(ctx, query, from, to, body).Scan(&m.ID, &m.FromUsername, &m.ToUsername, &m.Body, &m.SentAt)
	if err != nil {
		if db.PgErrorCode(err) == db.ForeignKeyViolation {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no such user: %s", to), err)
		}
		return nil, apperror.NewDatabaseError("failed to create message", err)
	}
	return &m, nil
}

// Get returns the message with both participants' profiles.
func (s *Store) Get(ctx context.Context, id int64) (*MessageDetail, error) {
	query := `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       f.username, f.first_name, f.last_name, f.phone,
		       t.username, t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS f ON f.username = m.from_username
		JOIN users AS t ON t.username = m.to_username
		WHERE m.id = $1
	`
	var m MessageDetail
	err := s.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
		&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone,
		&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no such message: %d", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get message", err)
	}
	return &m, nil
}

// MarkRead stamps read_at if it is still null and returns the stored value,
// so repeated calls report the first read time.
func (s *Store) MarkRead(ctx context.Context, id int64) (*ReadReceipt, error) {
	query := `
		UPDATE messages
		SET read_at = COALESCE(read_at, current_timestamp)
		WHERE id = $1
		RETURNING id, read_at
	`
	var r ReadReceipt
	if err := s.q.QueryRow(ctx, query, id).Scan(&r.ID, &r.ReadAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no such message: %d", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to mark message read", err)
	}
	return &r, nil
}

// ListTo returns the messages received by username, oldest first.
func (s *Store) ListTo(ctx context.Context, username string) ([]ReceivedMessage, error) {
	query := `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON u.username = m.from_username
		WHERE m.to_username = $1
		ORDER BY m.id
	`
	rows, err := s.q.Query(ctx, query, username)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list received messages", err)
	}
	defer rows.Close()

	out := []ReceivedMessage{}
	for rows.Next() {
		var m ReceivedMessage
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate messages", err)
	}
	return out, nil
}

// ListFrom returns the messages sent by username, oldest first.
func (s *Store) ListFrom(ctx context.Context, username string) ([]SentMessage, error) {
	query := `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON u.username = m.to_username
		WHERE m.from_username = $1
		ORDER BY m.id
	`
	rows, err := s.q.Query(ctx, query, username)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list sent messages", err)
	}
	defer rows.Close()

	out := []SentMessage{}
	for rows.Next() {
		var m SentMessage
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate messages", err)
	}
	return out, nil
}
