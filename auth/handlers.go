package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/messagely-go/httpx"
)

// LoginRegisterer is the part of Service the handlers call.
type LoginRegisterer interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, reg Registration) (string, error)
}

// Handlers serves /auth.
type Handlers struct {
	service LoginRegisterer
}

func NewHandlers(service LoginRegisterer) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the handlers on r.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.HandleLogin())
	r.Post("/register", h.HandleRegister())
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies a username and password and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid username/password or body"
// @Failure 429 {object} apperror.ErrorResponse "Too many attempts"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := httpx.DecodeAndValidate(w, r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		token, err := h.service.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}

// HandleRegister godoc
// @Summary Register
// @Description Creates an account and returns a session token for it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Account details"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse "Username taken"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := httpx.DecodeAndValidate(w, r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		token, err := h.service.Register(r.Context(), req.registration())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}
