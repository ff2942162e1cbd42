package messages

import "time"

// Message is a newly created message as returned by POST /messages/.
type Message struct {
	ID           int64     `json:"id" example:"1"`
	FromUsername string    `json:"from_username" example:"alice"`
	ToUsername   string    `json:"to_username" example:"bob"`
	Body         string    `json:"body" example:"hello"`
	SentAt       time.Time `json:"sent_at"`
}

// UserRef is the public profile embedded in message views.
type UserRef struct {
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Liddell"`
	Phone     string `json:"phone" example:"+14155550000"`
}

// MessageDetail is a message with both participants resolved.
type MessageDetail struct {
	ID       int64      `json:"id" example:"1"`
	Body     string     `json:"body" example:"hello"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser UserRef    `json:"from_user"`
	ToUser   UserRef    `json:"to_user"`
}

// ReadReceipt is the result of marking a message read.
type ReadReceipt struct {
	ID     int64     `json:"id" example:"1"`
	ReadAt time.Time `json:"read_at"`
}

// ReceivedMessage is an inbox entry.
type ReceivedMessage struct {
	ID       int64      `json:"id" example:"1"`
	Body     string     `json:"body" example:"hello"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser UserRef    `json:"from_user"`
}

// SentMessage is an outbox entry.
type SentMessage struct {
	ID     int64      `json:"id" example:"1"`
	Body   string     `json:"body" example:"hello"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
	ToUser UserRef    `json:"to_user"`
}

// CreateMessageRequest is the POST /messages/ payload.
type CreateMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required,max=64" example:"bob"`
	Body       string `json:"body" validate:"required,max=10000" example:"hello"`
}

// MessageResponse wraps a created message.
type MessageResponse struct {
	Message *Message `json:"message"`
}

// MessageDetailResponse wraps a message view.
type MessageDetailResponse struct {
	Message *MessageDetail `json:"message"`
}

// ReadReceiptResponse wraps a read receipt.
type ReadReceiptResponse struct {
	Message *ReadReceipt `json:"message"`
}

// ReceivedResponse wraps an inbox listing.
type ReceivedResponse struct {
	Messages []ReceivedMessage `json:"messages"`
}

// SentResponse wraps an outbox listing.
type SentResponse struct {
	Messages []SentMessage `json:"messages"`
}
