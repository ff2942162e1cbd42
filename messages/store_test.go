package messages

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/messagely-go/apperror"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewStore(mock), mock
}

func TestStore_Create(t *testing.T) {
	store, mock := newMockStore(t)
	sent := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs("alice", "bob", "hi").
		WillReturnRows(pgxmock.NewRows([]string{"id", "from_username", "to_username", "body", "sent_at"}).
			AddRow(int64(1), "alice", "bob", "hi", sent))

	m, err := store.Create(context.Background(), "alice", "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, &Message{ID: 1, FromUsername: "alice", ToUsername: "bob", Body: "hi", SentAt: sent}, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Create_UnknownRecipient(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs("alice", "ghost", "hi").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "messages_to_username_fkey"})

	_, err := store.Create(context.Background(), "alice", "ghost", "hi")
	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	sent := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM messages AS m\s+JOIN users AS f`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "body", "sent_at", "read_at",
			"f_username", "f_first", "f_last", "f_phone",
			"t_username", "t_first", "t_last", "t_phone",
		}).AddRow(int64(1), "hi", sent, nil, "alice", "Alice", "L", "1", "bob", "Bob", "B", "2"))

	m, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", m.FromUser.Username)
	assert.Equal(t, "Bob", m.ToUser.FirstName)
	assert.Nil(t, m.ReadAt)

	mock.ExpectQuery(`FROM messages AS m`).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)
	_, err = store.Get(context.Background(), 99)
	assert.True(t, apperror.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MarkRead(t *testing.T) {
	store, mock := newMockStore(t)
	read := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SET read_at = COALESCE\(read_at, current_timestamp\)`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "read_at"}).AddRow(int64(1), read))

	r, err := store.MarkRead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &ReadReceipt{ID: 1, ReadAt: read}, r)

	mock.ExpectQuery(`UPDATE messages`).WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	_, err = store.MarkRead(context.Background(), 2)
	assert.True(t, apperror.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListToAndFrom(t *testing.T) {
	store, mock := newMockStore(t)
	sent := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "body", "sent_at", "read_at", "username", "first_name", "last_name", "phone"}

	mock.ExpectQuery(`JOIN users AS u ON u.username = m.from_username\s+WHERE m.to_username = \$1`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "hi", sent, nil, "alice", "Alice", "L", "1").
			AddRow(int64(3), "again", sent, &sent, "carol", "Carol", "C", "3"))

	received, err := store.ListTo(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "alice", received[0].FromUser.Username)
	assert.Nil(t, received[0].ReadAt)
	assert.NotNil(t, received[1].ReadAt)

	mock.ExpectQuery(`JOIN users AS u ON u.username = m.to_username\s+WHERE m.from_username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(1), "hi", sent, nil, "bob", "Bob", "B", "2"))

	sentMsgs, err := store.ListFrom(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, sentMsgs, 1)
	assert.Equal(t, "bob", sentMsgs[0].ToUser.Username)

	mock.ExpectQuery(`WHERE m.from_username = \$1`).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows(cols))
	empty, err := store.ListFrom(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet())
}
