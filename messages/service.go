package messages

import (
	"context"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/events"
	"github.com/user/messagely-go/logging"
	"github.com/user/messagely-go/metrics"
)

// Publisher delivers events to a user's open streams.
type Publisher interface {
	Publish(ctx context.Context, username string, e events.Event) int
}

// Service applies the message authorization rules around Repository.
type Service struct {
	repo    Repository
	pub     Publisher
	metrics *metrics.Metrics
}

// NewService builds a Service. pub and m may be nil.
func NewService(repo Repository, pub Publisher, m *metrics.Metrics) *Service {
	return &Service{repo: repo, pub: pub, metrics: m}
}

// Get returns the message if the caller sent or received it.
func (s *Service) Get(ctx context.Context, caller *auth.Identity, id int64) (*MessageDetail, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanView(caller, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Send creates a message from the caller and notifies the recipient.
func (s *Service) Send(ctx context.Context, caller *auth.Identity, to, body string) (*Message, error) {
	if caller == nil {
		return nil, apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	m, err := s.repo.Create(ctx, caller.Username, to, body)
	if err != nil {
		return nil, err
	}
	s.metrics.MessageSent()
	s.notify(ctx, m.ToUsername, events.MessageCreated, m)
	return m, nil
}

// MarkRead records that the recipient has read the message and tells the
// sender.
func (s *Service) MarkRead(ctx context.Context, caller *auth.Identity, id int64) (*ReadReceipt, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanMarkRead(caller, m); err != nil {
		return nil, err
	}

	receipt, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.MessageRead()
	s.notify(ctx, m.FromUser.Username, events.MessageRead, receipt)
	return receipt, nil
}

// Received lists username's inbox; the caller must be username.
func (s *Service) Received(ctx context.Context, caller *auth.Identity, username string) ([]ReceivedMessage, error) {
	if err := auth.RequireIsUser(caller, username); err != nil {
		return nil, err
	}
	return s.repo.ListTo(ctx, username)
}

// Sent lists username's outbox; the caller must be username.
func (s *Service) Sent(ctx context.Context, caller *auth.Identity, username string) ([]SentMessage, error) {
	if err := auth.RequireIsUser(caller, username); err != nil {
		return nil, err
	}
	return s.repo.ListFrom(ctx, username)
}

func (s *Service) notify(ctx context.Context, username, name string, payload any) {
	if s.pub == nil {
		return
	}
	e, err := events.NewJSONEvent(name, payload)
	if err != nil {
		logging.FromContext(ctx).Error(ctx, "failed to build event", "event", name, "error", err)
		return
	}
	s.pub.Publish(ctx, username, e)
}
