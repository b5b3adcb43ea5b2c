package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
)

type capturingMailer struct {
	sent []string
}

func (m *capturingMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func TestMailRelayHonorsPreference(t *testing.T) {
	env := newTestEnv()
	mail := &capturingMailer{}
	logger := zap.NewNop()
	notifier := NewNotificationService(env.actors, env.messages, env.dispatcher, mail, logger)
	notifier.RegisterMailRelay()

	env.seedActor("cust-1", domain.RoleCustomer)
	optedOut := env.seedActor("cust-2", domain.RoleCustomer)
	optedOut.EmailNotifications = false
	require.NoError(t, env.actors.Update(context.Background(), optedOut))

	msg1, err := notifier.NotifyActor(context.Background(), nil, "cust-1", nil, "s", "b")
	require.NoError(t, err)
	msg2, err := notifier.NotifyActor(context.Background(), nil, "cust-2", nil, "s", "b")
	require.NoError(t, err)

	notifier.PublishMessageEvents(context.Background(), nil, []domain.Message{*msg1, *msg2})

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "cust-1@example.com", mail.sent[0])
}

func TestNotifyStaffSkipsSender(t *testing.T) {
	env := newTestEnv()
	env.seedActor("staff-1", domain.RoleStaff)
	env.seedActor("staff-2", domain.RoleStaff)

	sender := "staff-1"
	sent, err := env.notifier.NotifyStaff(context.Background(), nil, &sender, "s", "b")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "staff-2", sent[0].RecipientID)
}

func TestPublishMessageEventsEmitsPerMessage(t *testing.T) {
	env := newTestEnv()
	env.seedActor("staff-1", domain.RoleStaff)
	env.seedActor("staff-2", domain.RoleStaff)

	var captured []events.Event
	env.dispatcher.Subscribe(events.EventMessageSent, func(_ context.Context, e events.Event) error {
		captured = append(captured, e)
		return nil
	})

	sent, err := env.notifier.NotifyStaff(context.Background(), nil, nil, "s", "b")
	require.NoError(t, err)
	env.notifier.PublishMessageEvents(context.Background(), nil, sent)

	assert.Len(t, captured, len(sent))
}
