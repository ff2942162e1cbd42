package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/httpx"
	"github.com/user/messagely-go/logging"
	"github.com/user/messagely-go/messages"
	"github.com/user/messagely-go/metrics"
	"github.com/user/messagely-go/users"
)

const requestTimeout = 60 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// routerDeps is everything newRouter mounts.
type routerDeps struct {
	Logger   logging.Logger
	Verifier auth.Verifier
	Auth     *auth.Handlers
	Users    *users.UserHandlers
	Messages *messages.MessageHandler
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	DB       Pinger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(d.Logger))
	r.Use(middleware.Logger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(d.Metrics.Middleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/healthz", handleHealth(d.DB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		d.Auth.RegisterRoutes(r)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(auth.Middleware(d.Verifier))
		d.Users.RegisterRoutes(r)
		d.Messages.RegisterMailboxRoutes(r)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(auth.Middleware(d.Verifier))
		// The stream is long-lived and must not inherit the request timeout.
		r.Get("/stream", d.Messages.HandleStream())
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			d.Messages.RegisterRoutes(r)
		})
	})

	return r
}

// recoverer turns a handler panic into the standard JSON error body.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logging.FromContext(r.Context()).Error(r.Context(), "panic", "recovered", rvr)
				httpx.WriteError(w, r, apperror.NewInternalError("internal server error", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} apperror.ErrorResponse
// @Router /healthz [get]
func handleHealth(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			httpx.WriteError(w, r, apperror.NewDatabaseError("database unavailable", err))
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
