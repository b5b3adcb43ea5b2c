package dto

import (
	"time"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// ContactRequest payload for customer-to-staff messages.
type ContactRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReplyRequest payload for staff replies.
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// MessageResponse is the inbox view of a message. A nil sender_id marks a
// system-generated message.
type MessageResponse struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	SenderID    *string   `json:"sender_id,omitempty"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Reply       *string   `json:"reply,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageFromDomain maps a message to its response form.
func MessageFromDomain(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		SenderID:    m.SenderID,
		Subject:     m.Subject,
		Body:        m.Body,
		Reply:       m.Reply,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
