// Package auth implements credential verification, session tokens and the
// access-control predicates applied to every protected route.
package auth

import (
	"context"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/logging"
	"github.com/user/messagely-go/metrics"
)

// CredentialStore is the persistence the auth flows need.
type CredentialStore interface {
	// Register hashes reg.Password and stores the account. A taken username
	// is a ConflictError.
	Register(ctx context.Context, reg Registration) (*User, error)
	// PasswordHash returns the stored hash; found is false for unknown users.
	PasswordHash(ctx context.Context, username string) (hash string, found bool, err error)
	// TouchLogin sets last_login_at to now; NotFoundError if absent.
	TouchLogin(ctx context.Context, username string) error
}

// Throttle limits login attempts per username.
type Throttle interface {
	Allow(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

// Authenticator checks passwords. It never mutates stored state.
type Authenticator struct {
	store  CredentialStore
	hasher *Hasher
}

func NewAuthenticator(store CredentialStore, hasher *Hasher) *Authenticator {
	return &Authenticator{store: store, hasher: hasher}
}

// Authenticate reports whether password is correct for username. Unknown
// usernames return false without an error.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (bool, error) {
	hash, found, err := a.store.PasswordHash(ctx, username)
	if err != nil {
		return false, err
	}
	if !found {
		if err := a.hasher.CompareDummy(ctx, password); err != nil {
			return false, apperror.NewInternalError("failed to verify credentials", err)
		}
		return false, nil
	}

	ok, err := a.hasher.Compare(ctx, hash, password)
	if err != nil {
		return false, apperror.NewInternalError("failed to verify credentials", err)
	}
	return ok, nil
}

// Service runs the login and registration flows.
type Service struct {
	authn    *Authenticator
	store    CredentialStore
	tokens   *TokenService
	throttle Throttle
	metrics  *metrics.Metrics
}

// NewService wires the flows. throttle and m may be nil.
func NewService(store CredentialStore, hasher *Hasher, tokens *TokenService, throttle Throttle, m *metrics.Metrics) *Service {
	return &Service{
		authn:    NewAuthenticator(store, hasher),
		store:    store,
		tokens:   tokens,
		throttle: throttle,
		metrics:  m,
	}
}

// Login verifies the credentials, records the login and returns a token.
// Unknown users and wrong passwords produce the same BadRequestError.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	log := logging.FromContext(ctx)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			log.Warn(ctx, "login throttle unavailable, allowing attempt", "error", err)
		} else if !allowed {
			s.metrics.LoginAttempt(metrics.LoginThrottled)
			return "", apperror.NewTooManyRequestsError("too many login attempts, try again later", nil)
		}
	}

	ok, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		s.metrics.LoginAttempt(metrics.LoginError)
		return "", err
	}
	if !ok {
		s.metrics.LoginAttempt(metrics.LoginInvalid)
		log.Info(ctx, "login rejected", "username", username)
		return "", apperror.NewBadRequestError("invalid username/password", nil)
	}

	if err := s.store.TouchLogin(ctx, username); err != nil {
		s.metrics.LoginAttempt(metrics.LoginError)
		return "", err
	}
	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			log.Warn(ctx, "failed to reset login throttle", "username", username, "error", err)
		}
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		s.metrics.LoginAttempt(metrics.LoginError)
		return "", apperror.NewInternalError("failed to issue token", err)
	}
	s.metrics.LoginAttempt(metrics.LoginSuccess)
	return token, nil
}

// Register creates the account and returns a token for it.
func (s *Service) Register(ctx context.Context, reg Registration) (string, error) {
	user, err := s.store.Register(ctx, reg)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", apperror.NewInternalError("failed to issue token", err)
	}
	logging.FromContext(ctx).Info(ctx, "user registered", "username", user.Username)
	return token, nil
}
