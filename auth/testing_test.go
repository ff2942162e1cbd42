package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/messagely-go/apperror"
)

const testSecret = "test-secret-key-for-session-tokens"

// mockStore is an in-memory CredentialStore with optional overrides.
type mockStore struct {
	mu      sync.Mutex
	hasher  *Hasher
	hashes  map[string]string
	users   map[string]*User
	touched map[string]int

	passwordHashFunc func(ctx context.Context, username string) (string, bool, error)
	touchLoginFunc   func(ctx context.Context, username string) error
}

func newMockStore(h *Hasher) *mockStore {
	return &mockStore{
		hasher:  h,
		hashes:  map[string]string{},
		users:   map[string]*User{},
		touched: map[string]int{},
	}
}

func (m *mockStore) Register(ctx context.Context, reg Registration) (*User, error) {
	hash, err := m.hasher.Hash(ctx, reg.Password)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[reg.Username]; ok {
		return nil, apperror.NewConflictError("username already exists", nil)
	}
	u := &User{Username: reg.Username, FirstName: reg.FirstName, LastName: reg.LastName, Phone: reg.Phone}
	m.users[reg.Username] = u
	m.hashes[reg.Username] = hash
	return u, nil
}

func (m *mockStore) PasswordHash(ctx context.Context, username string) (string, bool, error) {
	if m.passwordHashFunc != nil {
		return m.passwordHashFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[username]
	return h, ok, nil
}

func (m *mockStore) TouchLogin(ctx context.Context, username string) error {
	if m.touchLoginFunc != nil {
		return m.touchLoginFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; !ok {
		return apperror.NewNotFoundError("user not found", nil)
	}
	m.touched[username]++
	return nil
}

func (m *mockStore) touchCount(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.touched[username]
}

type mockThrottle struct {
	allowFunc func(ctx context.Context, username string) (bool, error)
	resets    []string
}

func (m *mockThrottle) Allow(ctx context.Context, username string) (bool, error) {
	if m.allowFunc != nil {
		return m.allowFunc(ctx, username)
	}
	return true, nil
}

func (m *mockThrottle) Reset(_ context.Context, username string) error {
	m.resets = append(m.resets, username)
	return nil
}

var errStoreDown = errors.New("store down")

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost, 2)
}

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret)
	require.NoError(t, err)
	return ts
}
