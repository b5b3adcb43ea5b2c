package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/mailer"
	"github.com/bharatmovers/booking-service/internal/repository"
)

// NotificationService persists in-app messages and relays them to the mail
// collaborator. Message rows are written inside the caller's transaction;
// mail delivery happens after commit, off the event dispatcher, and is
// allowed to fail without affecting the triggering operation.
type NotificationService struct {
	actors     repository.ActorRepository
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
	mailer     mailer.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(actors repository.ActorRepository, messages repository.MessageRepository, dispatcher events.Dispatcher, m mailer.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		actors:     actors,
		messages:   messages,
		dispatcher: dispatcher,
		mailer:     m,
		logger:     logger,
	}
}

// NotifyActor writes one message for the recipient within tx. A nil sender
// marks a system-generated message.
func (n *NotificationService) NotifyActor(ctx context.Context, tx pgx.Tx, recipientID string, senderID *string, subject, body string) (*domain.Message, error) {
	msg := &domain.Message{
		RecipientID: recipientID,
		SenderID:    senderID,
		Subject:     subject,
		Body:        body,
	}
	repo := n.messages
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// NotifyStaff fans out one message per active staff actor within tx. Every
// staff actor is notified, not just the first one found.
func (n *NotificationService) NotifyStaff(ctx context.Context, tx pgx.Tx, senderID *string, subject, body string) ([]domain.Message, error) {
	staff, err := n.actors.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	var sent []domain.Message
	for i := range staff {
		if senderID != nil && staff[i].ID == *senderID {
			continue
		}
		msg, err := n.NotifyActor(ctx, tx, staff[i].ID, senderID, subject, body)
		if err != nil {
			return nil, err
		}
		sent = append(sent, *msg)
	}
	return sent, nil
}

// PublishMessageEvents emits a message_sent event per persisted message.
// Call only after the surrounding transaction committed.
func (n *NotificationService) PublishMessageEvents(ctx context.Context, actor *events.Actor, msgs []domain.Message) {
	for i := range msgs {
		event := events.Event{
			Type: events.EventMessageSent,
			Payload: events.MessageSentPayload{
				MessageID:   msgs[i].ID,
				RecipientID: msgs[i].RecipientID,
				Subject:     msgs[i].Subject,
			},
		}
		if actor != nil {
			event.Actor = *actor
		}
		publish(ctx, n.dispatcher, event)
	}
}

// RegisterMailRelay subscribes the best-effort email hand-off.
func (n *NotificationService) RegisterMailRelay() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageSent, n.relayMail)
}

func (n *NotificationService) relayMail(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return nil
	}
	recipient, err := n.actors.GetByID(ctx, payload.RecipientID)
	if err != nil {
		n.logger.Warn("mail relay: recipient lookup failed",
			zap.String("message_id", payload.MessageID), zap.Error(err))
		return nil
	}
	if !recipient.EmailNotifications {
		return nil
	}
	msg, err := n.messages.GetByID(ctx, payload.MessageID)
	if err != nil {
		n.logger.Warn("mail relay: message lookup failed",
			zap.String("message_id", payload.MessageID), zap.Error(err))
		return nil
	}
	if err := n.mailer.Send(ctx, recipient.Email, msg.Subject, msg.Body); err != nil {
		n.logger.Warn("mail relay: delivery failed",
			zap.String("message_id", payload.MessageID),
			zap.String("to", recipient.Email),
			zap.Error(err))
	}
	return nil
}
