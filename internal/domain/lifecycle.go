package domain

// EntityKind tags the lifecycle entity families.
type EntityKind string

const (
	KindBooking              EntityKind = "BOOKING"
	KindPartnerRequest       EntityKind = "PARTNER_REQUEST"
	KindEnterpriseRequest    EntityKind = "ENTERPRISE_REQUEST"
	KindCustomServiceRequest EntityKind = "CUSTOM_SERVICE_REQUEST"
)

// Status is a lifecycle state drawn from a kind-specific finite set.
type Status string

// LifecycleEntity is implemented by every record that moves through a
// kind-specific status table. Status changes go through the transition
// engine only; nothing else mutates the field.
type LifecycleEntity interface {
	EntityID() string
	EntityKind() EntityKind
	CurrentStatus() Status
	// SubmitterID returns nil for anonymously submitted entities.
	SubmitterID() *string
}
