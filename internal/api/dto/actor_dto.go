package dto

import (
	"time"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account.
type AuthResponse struct {
	Token string        `json:"token"`
	Actor ActorResponse `json:"actor"`
}

// ActorResponse is the public view of an account.
type ActorResponse struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	Address            string      `json:"address,omitempty"`
	Role               domain.Role `json:"role"`
	Active             bool        `json:"active"`
	EmailNotifications bool        `json:"email_notifications"`
	SMSNotifications   bool        `json:"sms_notifications"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// UpdateActorRequest is the admin payload for role/activation edits.
type UpdateActorRequest struct {
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// ActorFromDomain maps an actor to its response form.
func ActorFromDomain(actor *domain.Actor) ActorResponse {
	return ActorResponse{
		ID:                 actor.ID,
		Name:               actor.Name,
		Email:              actor.Email,
		Phone:              actor.Phone,
		Address:            actor.Address,
		Role:               actor.Role,
		Active:             actor.Active,
		EmailNotifications: actor.EmailNotifications,
		SMSNotifications:   actor.SMSNotifications,
		CreatedAt:          actor.CreatedAt,
		UpdatedAt:          actor.UpdatedAt,
	}
}
