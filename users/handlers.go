package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/httpx"
)

// Directory is the read side of Store used by the handlers.
type Directory interface {
	Get(ctx context.Context, username string) (*auth.User, error)
	ListAll(ctx context.Context) ([]auth.UserSummary, error)
}

// UsersResponse wraps the user listing.
type UsersResponse struct {
	Users []auth.UserSummary `json:"users"`
}

// UserResponse wraps a single profile.
type UserResponse struct {
	User *auth.User `json:"user"`
}

// UserHandlers serves /users. The routes expect auth.Middleware upstream.
type UserHandlers struct {
	dir Directory
}

func NewUserHandlers(dir Directory) *UserHandlers {
	return &UserHandlers{dir: dir}
}

func (h *UserHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList())
	r.Get("/{username}", h.HandleGet())
}

// HandleList godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.UsersResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /users/ [get]
func (h *UserHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.dir.ListAll(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
	}
}

// HandleGet godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} users.UserResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.dir.Get(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, UserResponse{User: user})
	}
}
