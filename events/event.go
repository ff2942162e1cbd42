// Package events fans message notifications out to users' open
// Server-Sent Event streams.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Event names sent on the stream.
const (
	MessageCreated = "message.created"
	MessageRead    = "message.read"
)

// Event is one Server-Sent Event.
type Event struct {
	Name string
	Data string
}

// NewJSONEvent builds an event whose data is v encoded as JSON.
func NewJSONEvent(name string, v any) (Event, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	return Event{Name: name, Data: string(b)}, nil
}

// WriteTo writes e in text/event-stream framing.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	if e.Name != "" {
		sb.WriteString("event: ")
		sb.WriteString(e.Name)
		sb.WriteByte('\n')
	}
	for _, line := range strings.Split(e.Data, "\n") {
		sb.WriteString("data: ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
