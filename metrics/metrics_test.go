package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.LoginAttempt(LoginSuccess)
	m.LoginAttempt(LoginInvalid)
	m.LoginAttempt(LoginInvalid)
	m.MessageSent()
	m.MessageRead()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues(LoginInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesRead))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.LoginAttempt(LoginSuccess)
		m.MessageSent()
		m.MessageRead()
	})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Middleware(h))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/messages/"+id, nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `route="/messages/{id}"`))
	assert.Contains(t, body, `status="404"`)
	assert.Contains(t, body, "messagely_http_request_duration_seconds_count")
}
