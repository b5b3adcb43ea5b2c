package lifecycle

import (
	"github.com/bharatmovers/booking-service/internal/domain"
)

func init() {
	Register(bookingTable())
	Register(partnerRequestTable())
	Register(enterpriseRequestTable())
	Register(customServiceRequestTable())
}

var adminOnly = []domain.Role{domain.RoleAdmin}

// bookingTable keeps the admin side unrestricted: one wildcard rule per
// target status, matching the operational flexibility the admin panel has
// always had. Customers may only cancel while pending or confirmed. The
// asymmetry with the request tables is intentional, pending product review.
func bookingTable() *Table {
	customerCancel := []domain.Role{domain.RoleCustomer, domain.RoleDriver}
	return &Table{
		Kind:    domain.KindBooking,
		Initial: domain.BookingStatusPending,
		States: []domain.Status{
			domain.BookingStatusPending,
			domain.BookingStatusConfirmed,
			domain.BookingStatusInProgress,
			domain.BookingStatusCompleted,
			domain.BookingStatusCancelled,
		},
		Rules: []Rule{
			{From: AnyStatus, Action: ActionConfirm, To: domain.BookingStatusConfirmed, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: AnyStatus, Action: ActionStart, To: domain.BookingStatusInProgress, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: AnyStatus, Action: ActionComplete, To: domain.BookingStatusCompleted, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: AnyStatus, Action: ActionCancel, To: domain.BookingStatusCancelled, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: AnyStatus, Action: ActionMarkPending, To: domain.BookingStatusPending, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: domain.BookingStatusPending, Action: ActionCancel, To: domain.BookingStatusCancelled, Roles: customerCancel, Effects: []Effect{EffectNotifyStaff}},
			{From: domain.BookingStatusConfirmed, Action: ActionCancel, To: domain.BookingStatusCancelled, Roles: customerCancel, Effects: []Effect{EffectNotifyStaff}},
		},
	}
}

func partnerRequestTable() *Table {
	return &Table{
		Kind:    domain.KindPartnerRequest,
		Initial: domain.RequestStatusPending,
		States: []domain.Status{
			domain.RequestStatusPending,
			domain.RequestStatusApproved,
			domain.RequestStatusRejected,
		},
		Rules: []Rule{
			{From: domain.RequestStatusPending, Action: ActionApprove, To: domain.RequestStatusApproved, Roles: adminOnly, Effects: []Effect{EffectPromoteDriver, EffectNotifySubmitter}},
			{From: domain.RequestStatusPending, Action: ActionReject, To: domain.RequestStatusRejected, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
		},
	}
}

func enterpriseRequestTable() *Table {
	return &Table{
		Kind:    domain.KindEnterpriseRequest,
		Initial: domain.RequestStatusPending,
		States: []domain.Status{
			domain.RequestStatusPending,
			domain.RequestStatusContacted,
			domain.RequestStatusClosed,
		},
		Rules: []Rule{
			{From: domain.RequestStatusPending, Action: ActionContact, To: domain.RequestStatusContacted, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: domain.RequestStatusPending, Action: ActionClose, To: domain.RequestStatusClosed, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: domain.RequestStatusContacted, Action: ActionClose, To: domain.RequestStatusClosed, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
		},
	}
}

func customServiceRequestTable() *Table {
	return &Table{
		Kind:    domain.KindCustomServiceRequest,
		Initial: domain.RequestStatusPending,
		States: []domain.Status{
			domain.RequestStatusPending,
			domain.RequestStatusApproved,
			domain.RequestStatusRejected,
		},
		Rules: []Rule{
			{From: domain.RequestStatusPending, Action: ActionApprove, To: domain.RequestStatusApproved, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
			{From: domain.RequestStatusPending, Action: ActionReject, To: domain.RequestStatusRejected, Roles: adminOnly, Effects: []Effect{EffectNotifySubmitter}},
		},
	}
}
