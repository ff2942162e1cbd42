package messages

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/events"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu       sync.Mutex
	users    map[string]UserRef
	messages map[int64]*MessageDetail
	nextID   int64
	now      func() time.Time

	markReadCalls int
}

func newMemRepo(usernames ...string) *memRepo {
	r := &memRepo{
		users:    map[string]UserRef{},
		messages: map[int64]*MessageDetail{},
		now:      func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) },
	}
	for _, u := range usernames {
		r.users[u] = UserRef{Username: u, FirstName: u + "-first", LastName: u + "-last", Phone: "555"}
	}
	return r
}

func (r *memRepo) Create(_ context.Context, from, to, body string) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fu, ok := r.users[from]
	if !ok {
		return nil, apperror.NewNotFoundError("no such user: "+from, nil)
	}
	tu, ok := r.users[to]
	if !ok {
		return nil, apperror.NewNotFoundError("no such user: "+to, nil)
	}
	r.nextID++
	d := &MessageDetail{ID: r.nextID, Body: body, SentAt: r.now(), FromUser: fu, ToUser: tu}
	r.messages[d.ID] = d
	return &Message{ID: d.ID, FromUsername: from, ToUsername: to, Body: body, SentAt: d.SentAt}, nil
}

func (r *memRepo) Get(_ context.Context, id int64) (*MessageDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.messages[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("no such message: %d", id), nil)
	}
	cp := *d
	return &cp, nil
}

func (r *memRepo) MarkRead(_ context.Context, id int64) (*ReadReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markReadCalls++
	d, ok := r.messages[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("no such message: %d", id), nil)
	}
	if d.ReadAt == nil {
		t := r.now()
		d.ReadAt = &t
	}
	return &ReadReceipt{ID: id, ReadAt: *d.ReadAt}, nil
}

func (r *memRepo) ListTo(_ context.Context, username string) ([]ReceivedMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []ReceivedMessage{}
	for _, d := range r.sorted() {
		if d.ToUser.Username == username {
			out = append(out, ReceivedMessage{ID: d.ID, Body: d.Body, SentAt: d.SentAt, ReadAt: d.ReadAt, FromUser: d.FromUser})
		}
	}
	return out, nil
}

func (r *memRepo) ListFrom(_ context.Context, username string) ([]SentMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []SentMessage{}
	for _, d := range r.sorted() {
		if d.FromUser.Username == username {
			out = append(out, SentMessage{ID: d.ID, Body: d.Body, SentAt: d.SentAt, ReadAt: d.ReadAt, ToUser: d.ToUser})
		}
	}
	return out, nil
}

func (r *memRepo) sorted() []*MessageDetail {
	out := make([]*MessageDetail, 0, len(r.messages))
	for _, d := range r.messages {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type published struct {
	username string
	event    events.Event
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, username string, e events.Event) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{username: username, event: e})
	return 1
}
