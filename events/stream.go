package events

import (
	"fmt"
	"net/http"
	"time"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/httpx"
	"github.com/user/messagely-go/logging"
)

// HeartbeatInterval is how often an idle stream receives a comment line.
var HeartbeatInterval = 25 * time.Second

// Stream subscribes username and writes events to w until the client goes
// away.
func (b *Broadcaster) Stream(w http.ResponseWriter, r *http.Request, username string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpx.WriteError(w, r, apperror.NewInternalError("streaming unsupported", nil))
		return
	}

	// The stream outlives the server's WriteTimeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	id, ch := b.Subscribe(username)
	defer b.Unsubscribe(id)

	ctx := r.Context()
	log := logging.FromContext(ctx).With("client_id", id, "username", username)
	log.Debug(ctx, "event stream opened")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": connected %s\n\n", id)
	flusher.Flush()

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug(ctx, "event stream closed")
			return
		case e, open := <-ch:
			if !open {
				return
			}
			if _, err := e.WriteTo(w); err != nil {
				log.Warn(ctx, "failed to write event", "error", err)
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
