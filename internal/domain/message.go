package domain

import "time"

// Message is an in-app notification or direct message between actors.
// A nil SenderID denotes a system-generated message.
type Message struct {
	ID          string
	RecipientID string
	SenderID    *string
	Subject     string
	Body        string
	Reply       *string
	IsRead      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
