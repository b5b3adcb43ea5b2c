package service

import (
	"context"
	"strings"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// MessageService handles the actor-facing inbox: contact messages to staff,
// listing one's own messages, marking them read and staff replies.
type MessageService struct {
	messages repository.MessageRepository
	notifier *NotificationService
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, notifier *NotificationService) *MessageService {
	return &MessageService{messages: messages, notifier: notifier}
}

// ContactStaff delivers a message from the actor to every active staff
// member.
func (s *MessageService) ContactStaff(ctx context.Context, actor *domain.Actor, subject, body string) ([]domain.Message, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	details := map[string]any{}
	if subject == "" {
		details["subject"] = "required"
	}
	if body == "" {
		details["body"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid message", details)
	}

	sent, err := s.notifier.NotifyStaff(ctx, nil, actorIDPtr(actor), subject, body)
	if err != nil {
		return nil, err
	}
	ea := eventActor(actor)
	s.notifier.PublishMessageEvents(ctx, &ea, sent)
	return sent, nil
}

// ListMine returns the actor's inbox, newest first.
func (s *MessageService) ListMine(ctx context.Context, actor *domain.Actor, limit, offset int) ([]domain.Message, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return s.messages.ListByRecipient(ctx, actor.ID, limit, offset)
}

// Get fetches one message. Only the recipient or an elevated actor may read
// it.
func (s *MessageService) Get(ctx context.Context, actor *domain.Actor, id string) (*domain.Message, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != actor.ID && !actor.Elevated() {
		return nil, apperrors.NewForbidden("access denied")
	}
	return msg, nil
}

// MarkRead flags a message as read. Recipient only; a staff member reading
// someone else's message does not consume it.
func (s *MessageService) MarkRead(ctx context.Context, actor *domain.Actor, id string) (*domain.Message, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != actor.ID {
		return nil, apperrors.NewForbidden("only the recipient can mark a message read")
	}
	if msg.IsRead {
		return msg, nil
	}
	if err := s.messages.MarkRead(ctx, msg.ID); err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}

// Reply records a staff reply on a message and delivers it back to the
// original sender as a new message.
func (s *MessageService) Reply(ctx context.Context, actor *domain.Actor, id, reply string) (*domain.Message, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Elevated() {
		return nil, apperrors.NewForbidden("staff privilege required")
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperrors.NewValidationError("reply must not be empty", nil)
	}

	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.messages.SetReply(ctx, msg.ID, reply); err != nil {
		return nil, err
	}
	msg.Reply = &reply

	if msg.SenderID != nil {
		sent, err := s.notifier.NotifyActor(ctx, nil, *msg.SenderID, actorIDPtr(actor), "Re: "+msg.Subject, reply)
		if err != nil {
			return nil, err
		}
		ea := eventActor(actor)
		s.notifier.PublishMessageEvents(ctx, &ea, []domain.Message{*sent})
	}
	return msg, nil
}
