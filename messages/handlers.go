package messages

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/httpx"
)

// MessageService is what the handlers need from Service.
type MessageService interface {
	Get(ctx context.Context, caller *auth.Identity, id int64) (*MessageDetail, error)
	Send(ctx context.Context, caller *auth.Identity, to, body string) (*Message, error)
	MarkRead(ctx context.Context, caller *auth.Identity, id int64) (*ReadReceipt, error)
	Received(ctx context.Context, caller *auth.Identity, username string) ([]ReceivedMessage, error)
	Sent(ctx context.Context, caller *auth.Identity, username string) ([]SentMessage, error)
}

// Streamer holds a user's event stream open.
type Streamer interface {
	Stream(w http.ResponseWriter, r *http.Request, username string)
}

// MessageHandler serves /messages and the per-user mailbox routes. All
// routes expect auth.Middleware upstream.
type MessageHandler struct {
	service  MessageService
	streamer Streamer
}

func NewMessageHandler(service MessageService, streamer Streamer) *MessageHandler {
	return &MessageHandler{service: service, streamer: streamer}
}

// RegisterRoutes mounts the request/response message routes.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreate())
	r.Get("/{id}", h.HandleGet())
	r.Post("/{id}/read", h.HandleMarkRead())
}

// RegisterMailboxRoutes mounts /{username}/to and /{username}/from on the
// users router.
func (h *MessageHandler) RegisterMailboxRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireCorrectUser("username"))
		r.Get("/{username}/to", h.HandleReceived())
		r.Get("/{username}/from", h.HandleSent())
	})
}

// messageID parses the {id} parameter. Ids are int4 in the database, so a
// positive id beyond that range cannot exist.
func messageID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) && id > 0 {
		return 0, apperror.NewNotFoundError(fmt.Sprintf("no such message: %s", raw), nil)
	}
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequestError("invalid message id", err)
	}
	return id, nil
}

// HandleGet godoc
// @Summary Get a message
// @Description Only the sender or the recipient may view a message.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} messages.MessageDetailResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /messages/{id} [get]
func (h *MessageHandler) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		id, err := messageID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		m, err := h.service.Get(r.Context(), caller, id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, MessageDetailResponse{Message: m})
	}
}

// HandleCreate godoc
// @Summary Send a message
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param messageBody body messages.CreateMessageRequest true "Recipient and body"
// @Success 200 {object} messages.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Unknown recipient"
// @Router /messages/ [post]
func (h *MessageHandler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		var req CreateMessageRequest
		if err := httpx.DecodeAndValidate(w, r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		m, err := h.service.Send(r.Context(), caller, req.ToUsername, req.Body)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: m})
	}
}

// HandleMarkRead godoc
// @Summary Mark a message read
// @Description Only the recipient may mark a message read. The first read time is kept.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} messages.ReadReceiptResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /messages/{id}/read [post]
func (h *MessageHandler) HandleMarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		id, err := messageID(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		receipt, err := h.service.MarkRead(r.Context(), caller, id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ReadReceiptResponse{Message: receipt})
	}
}

// HandleReceived godoc
// @Summary List messages received by a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} messages.ReceivedResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /users/{username}/to [get]
func (h *MessageHandler) HandleReceived() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		msgs, err := h.service.Received(r.Context(), caller, chi.URLParam(r, "username"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ReceivedResponse{Messages: msgs})
	}
}

// HandleSent godoc
// @Summary List messages sent by a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} messages.SentResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /users/{username}/from [get]
func (h *MessageHandler) HandleSent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		msgs, err := h.service.Sent(r.Context(), caller, chi.URLParam(r, "username"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, SentResponse{Messages: msgs})
	}
}

// HandleStream godoc
// @Summary Stream message events
// @Description Server-Sent Events: message.created when the caller receives a message, message.read when a sent message is read.
// @Tags Messages
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /messages/stream [get]
func (h *MessageHandler) HandleStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.MustIdentity(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		h.streamer.Stream(w, r, caller.Username)
	}
}
