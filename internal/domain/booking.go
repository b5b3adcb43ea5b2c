package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking statuses.
const (
	BookingStatusPending    Status = "PENDING"
	BookingStatusConfirmed  Status = "CONFIRMED"
	BookingStatusInProgress Status = "IN_PROGRESS"
	BookingStatusCompleted  Status = "COMPLETED"
	BookingStatusCancelled  Status = "CANCELLED"
)

// Booking is a customer's request to move goods using a catalog service.
type Booking struct {
	ID               string
	CustomerID       string
	ServiceID        string
	PickupLocation   string
	DeliveryLocation string
	PickupDate       time.Time
	Status           Status
	TotalDistance    *decimal.Decimal
	TotalAmount      *decimal.Decimal
	Notes            string
	AdminNotes       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (b *Booking) EntityID() string       { return b.ID }
func (b *Booking) EntityKind() EntityKind { return KindBooking }
func (b *Booking) CurrentStatus() Status  { return b.Status }

func (b *Booking) SubmitterID() *string {
	if b.CustomerID == "" {
		return nil
	}
	id := b.CustomerID
	return &id
}

// Editable reports whether the customer may still change payload fields.
func (b *Booking) Editable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
