package messages

import (
	"github.com/user/messagely-go/apperror"
	"github.com/user/messagely-go/auth"
)

// CanView allows the sender and the recipient.
func CanView(id *auth.Identity, m *MessageDetail) error {
	if id == nil || m == nil {
		return apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	if id.Username != m.FromUser.Username && id.Username != m.ToUser.Username {
		return apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	return nil
}

// CanMarkRead allows only the recipient.
func CanMarkRead(id *auth.Identity, m *MessageDetail) error {
	if id == nil || m == nil {
		return apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	return auth.RequireIsUser(id, m.ToUser.Username)
}
