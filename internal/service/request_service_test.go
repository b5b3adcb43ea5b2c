package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
)

func TestSubmitPartnerRequest(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	env.seedActor("staff-1", domain.RoleStaff)

	req, err := env.requestService().SubmitPartnerRequest(context.Background(), customer, domain.PartnerDetails{
		VehicleDetails:  "Tata Ace 2019",
		LicenseNumber:   "MH12-998877",
		ExperienceYears: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Equal(t, domain.KindPartnerRequest, req.Kind)
	require.NotNil(t, req.ActorID)
	assert.Equal(t, "cust-1", *req.ActorID)

	staffInbox := env.messagesFor("staff-1")
	require.Len(t, staffInbox, 1)
	require.NotNil(t, staffInbox[0].SenderID)
	assert.Equal(t, "cust-1", *staffInbox[0].SenderID)
}

func TestSubmitPartnerRequestValidation(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)

	_, err := env.requestService().SubmitPartnerRequest(context.Background(), customer, domain.PartnerDetails{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = env.requestService().SubmitPartnerRequest(context.Background(), nil, domain.PartnerDetails{
		VehicleDetails: "Tata Ace",
		LicenseNumber:  "MH12",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestSubmitEnterpriseRequestAnonymous(t *testing.T) {
	env := newTestEnv()
	env.seedActor("staff-1", domain.RoleStaff)

	var captured []events.Event
	env.dispatcher.Subscribe(events.EventRequestSubmitted, func(_ context.Context, e events.Event) error {
		captured = append(captured, e)
		return nil
	})

	req, err := env.requestService().SubmitEnterpriseRequest(context.Background(), nil, domain.EnterpriseDetails{
		FirstName: "Asha",
		Company:   "Acme Logistics",
		WorkEmail: "asha@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Nil(t, req.ActorID)

	// The staff notification is a system message.
	staffInbox := env.messagesFor("staff-1")
	require.Len(t, staffInbox, 1)
	assert.Nil(t, staffInbox[0].SenderID)

	require.Len(t, captured, 1)
	payload, ok := captured[0].Payload.(events.RequestSubmittedPayload)
	require.True(t, ok)
	assert.True(t, payload.Anonymous)
}

func TestPartnerApprovePromotesSubmitter(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.seedActor("cust-1", domain.RoleCustomer)
	submitter := "cust-1"
	env.requests.add(&domain.Request{
		ID:      "r-1",
		Kind:    domain.KindPartnerRequest,
		ActorID: &submitter,
		Status:  domain.RequestStatusPending,
	})

	req, err := env.requestService().ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, req.Status)

	promoted, err := env.actors.GetByID(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, promoted.Role)
	assert.True(t, promoted.IsDriver)
	assert.False(t, promoted.IsCustomer)

	// Approval notifies the submitter.
	assert.Len(t, env.messagesFor("cust-1"), 1)
}

func TestPartnerRejectLeavesRole(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.seedActor("cust-1", domain.RoleCustomer)
	submitter := "cust-1"
	env.requests.add(&domain.Request{
		ID:      "r-1",
		Kind:    domain.KindPartnerRequest,
		ActorID: &submitter,
		Status:  domain.RequestStatusPending,
	})

	req, err := env.requestService().ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, req.Status)

	actor, err := env.actors.GetByID(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, actor.Role)
}

func TestPartnerApproveSkipsAlreadyPromoted(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.seedActor("drv-1", domain.RoleDriver)
	submitter := "drv-1"
	env.requests.add(&domain.Request{
		ID:      "r-1",
		Kind:    domain.KindPartnerRequest,
		ActorID: &submitter,
		Status:  domain.RequestStatusPending,
	})

	_, err := env.requestService().ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionApprove)
	require.NoError(t, err)
	// No role write happens for a submitter who is no longer a customer.
	assert.Zero(t, env.actors.updates)
}

func TestPartnerApproveTerminalIsConflict(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	submitter := "cust-1"
	env.seedActor("cust-1", domain.RoleCustomer)
	env.requests.add(&domain.Request{
		ID:      "r-1",
		Kind:    domain.KindPartnerRequest,
		ActorID: &submitter,
		Status:  domain.RequestStatusApproved,
	})

	_, err := env.requestService().ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionApprove)
	require.Error(t, err)
	assert.Equal(t, "ILLEGAL_TRANSITION", domainCode(t, err))
	assert.Zero(t, env.requests.statusWrites)
}

func TestEnterpriseContactThenClose(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.requests.add(&domain.Request{
		ID:     "r-1",
		Kind:   domain.KindEnterpriseRequest,
		Status: domain.RequestStatusPending,
	})

	svc := env.requestService()
	req, err := svc.ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionContact)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusContacted, req.Status)

	req, err = svc.ApplyTransition(context.Background(), admin, "r-1", lifecycle.ActionClose)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusClosed, req.Status)

	// No submitter to notify on an anonymous inquiry.
	assert.Empty(t, env.messages.messages)
}

func TestRequestListScopedToOwner(t *testing.T) {
	env := newTestEnv()
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	staff := env.seedActor("staff-1", domain.RoleStaff)
	mine := "cust-1"
	other := "cust-2"
	env.requests.add(&domain.Request{ID: "r-1", Kind: domain.KindCustomServiceRequest, ActorID: &mine, Status: domain.RequestStatusPending})
	env.requests.add(&domain.Request{ID: "r-2", Kind: domain.KindCustomServiceRequest, ActorID: &other, Status: domain.RequestStatusPending})

	visible, err := env.requestService().List(context.Background(), customer, RequestListFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "r-1", visible[0].ID)

	all, err := env.requestService().List(context.Background(), staff, RequestListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRequestDeleteAdminOnly(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	staff := env.seedActor("staff-1", domain.RoleStaff)
	env.requests.add(&domain.Request{ID: "r-1", Kind: domain.KindEnterpriseRequest, Status: domain.RequestStatusClosed})

	err := env.requestService().Delete(context.Background(), staff, "r-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	require.NoError(t, env.requestService().Delete(context.Background(), admin, "r-1"))
	_, err = env.requests.GetByID(context.Background(), "r-1")
	assert.Error(t, err)
}

func TestRequestAdminNotes(t *testing.T) {
	env := newTestEnv()
	staff := env.seedActor("staff-1", domain.RoleStaff)
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	env.requests.add(&domain.Request{ID: "r-1", Kind: domain.KindEnterpriseRequest, Status: domain.RequestStatusPending})

	_, err := env.requestService().SetAdminNotes(context.Background(), customer, "r-1", "note")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	req, err := env.requestService().SetAdminNotes(context.Background(), staff, "r-1", "  called back  ")
	require.NoError(t, err)
	assert.Equal(t, "called back", req.AdminNotes)
}
