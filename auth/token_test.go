package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_EmptySecret(t *testing.T) {
	t.Parallel()
	ts, err := NewTokenService("")
	assert.Nil(t, ts)
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()
	ts := newTestTokens(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return fixed }

	token, err := ts.Issue("alice")
	require.NoError(t, err)

	id, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, fixed.Equal(id.IssuedAt))
}

func TestTokenService_NoExpiry(t *testing.T) {
	t.Parallel()
	ts := newTestTokens(t)
	ts.now = func() time.Time { return time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC) }

	token, err := ts.Issue("alice")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)

	_, err = ts.Verify(token)
	assert.NoError(t, err)
}

func TestTokenService_Rejects(t *testing.T) {
	t.Parallel()
	ts := newTestTokens(t)
	valid, err := ts.Issue("alice")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: "alice"}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Username: "alice"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "alice"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUsername, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	forgedPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"username":"mallory","iat":1}`))
	tamperedPayload := parts[0] + "." + forgedPayload + "." + parts[2]

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tamperedSig := parts[0] + "." + parts[1] + "." + string(sig)

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not.a.token",
		"wrong key":        otherKey,
		"unexpected alg":   hs512,
		"alg none":         none,
		"missing username": noUsername,
		"tampered payload": tamperedPayload,
		"tampered sig":     tamperedSig,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			id, err := ts.Verify(token)
			assert.Nil(t, id)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
