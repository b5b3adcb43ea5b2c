package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatmovers/booking-service/internal/domain"
)

func (e *testEnv) messageService() *MessageService {
	return NewMessageService(e.messages, e.notifier)
}

func TestContactStaffFansOut(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	env.seedActor("staff-1", domain.RoleStaff)
	env.seedActor("staff-2", domain.RoleStaff)
	env.seedActor("admin-1", domain.RoleAdmin)
	// Deactivated staff are skipped by the fan-out.
	inactive := env.seedActor("staff-3", domain.RoleStaff)
	inactive.Active = false
	require.NoError(t, env.actors.Update(context.Background(), inactive))

	sent, err := env.messageService().ContactStaff(context.Background(), customer, "Need help", "My booking is stuck")
	require.NoError(t, err)
	assert.Len(t, sent, 3) // both staff and the admin

	assert.Len(t, env.messagesFor("staff-1"), 1)
	assert.Len(t, env.messagesFor("staff-2"), 1)
	assert.Len(t, env.messagesFor("admin-1"), 1)
	assert.Empty(t, env.messagesFor("staff-3"))
}

func TestContactStaffValidation(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)

	_, err := env.messageService().ContactStaff(context.Background(), customer, "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = env.messageService().ContactStaff(context.Background(), nil, "Hi", "there")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestMarkReadRecipientOnly(t *testing.T) {
	env := newTestEnv()
	recipient := env.seedActor("cust-1", domain.RoleCustomer)
	staff := env.seedActor("staff-1", domain.RoleStaff)

	msg := &domain.Message{RecipientID: "cust-1", Subject: "hello", Body: "world"}
	require.NoError(t, env.messages.Create(context.Background(), msg))

	// Even staff cannot consume someone else's message.
	_, err := env.messageService().MarkRead(context.Background(), staff, msg.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	read, err := env.messageService().MarkRead(context.Background(), recipient, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	// Marking twice is a no-op.
	again, err := env.messageService().MarkRead(context.Background(), recipient, msg.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
}

func TestGetMessageAccess(t *testing.T) {
	env := newTestEnv()
	recipient := env.seedActor("cust-1", domain.RoleCustomer)
	other := env.seedActor("cust-2", domain.RoleCustomer)
	staff := env.seedActor("staff-1", domain.RoleStaff)

	msg := &domain.Message{RecipientID: "cust-1", Subject: "s", Body: "b"}
	require.NoError(t, env.messages.Create(context.Background(), msg))

	_, err := env.messageService().Get(context.Background(), recipient, msg.ID)
	assert.NoError(t, err)
	_, err = env.messageService().Get(context.Background(), staff, msg.ID)
	assert.NoError(t, err)

	_, err = env.messageService().Get(context.Background(), other, msg.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestReplyDeliversToSender(t *testing.T) {
	env := newTestEnv()
	env.seedActor("cust-1", domain.RoleCustomer)
	staff := env.seedActor("staff-1", domain.RoleStaff)
	customer := "cust-1"

	msg := &domain.Message{RecipientID: "staff-1", SenderID: &customer, Subject: "Need help", Body: "stuck"}
	require.NoError(t, env.messages.Create(context.Background(), msg))

	replied, err := env.messageService().Reply(context.Background(), staff, msg.ID, "On it")
	require.NoError(t, err)
	require.NotNil(t, replied.Reply)
	assert.Equal(t, "On it", *replied.Reply)

	inbox := env.messagesFor("cust-1")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Re: Need help", inbox[0].Subject)
	require.NotNil(t, inbox[0].SenderID)
	assert.Equal(t, "staff-1", *inbox[0].SenderID)
}

func TestReplyStaffOnly(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)

	msg := &domain.Message{RecipientID: "cust-1", Subject: "s", Body: "b"}
	require.NoError(t, env.messages.Create(context.Background(), msg))

	_, err := env.messageService().Reply(context.Background(), customer, msg.ID, "hi")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}
