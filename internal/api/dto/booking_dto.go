package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	ServiceID        string           `json:"service_id"`
	PickupLocation   string           `json:"pickup_location"`
	DeliveryLocation string           `json:"delivery_location"`
	PickupDate       time.Time        `json:"pickup_date"`
	DistanceKM       *decimal.Decimal `json:"distance_km"`
	Notes            string           `json:"notes"`
}

// UpdateBookingRequest payload. Absent fields are left unchanged.
type UpdateBookingRequest struct {
	PickupLocation   *string          `json:"pickup_location"`
	DeliveryLocation *string          `json:"delivery_location"`
	PickupDate       *time.Time       `json:"pickup_date"`
	DistanceKM       *decimal.Decimal `json:"distance_km"`
	Notes            *string          `json:"notes"`
}

// TransitionRequest names the lifecycle action to apply.
type TransitionRequest struct {
	Action string `json:"action"`
}

// AdminNotesRequest payload.
type AdminNotesRequest struct {
	Notes string `json:"notes"`
}

// BookingResponse is the full booking view.
type BookingResponse struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customer_id"`
	ServiceID        string           `json:"service_id"`
	PickupLocation   string           `json:"pickup_location"`
	DeliveryLocation string           `json:"delivery_location"`
	PickupDate       time.Time        `json:"pickup_date"`
	Status           domain.Status    `json:"status"`
	TotalDistance    *decimal.Decimal `json:"total_distance,omitempty"`
	TotalAmount      *decimal.Decimal `json:"total_amount,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	AdminNotes       string           `json:"admin_notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BookingFromDomain maps a booking to its response form.
func BookingFromDomain(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		ServiceID:        b.ServiceID,
		PickupLocation:   b.PickupLocation,
		DeliveryLocation: b.DeliveryLocation,
		PickupDate:       b.PickupDate,
		Status:           b.Status,
		TotalDistance:    b.TotalDistance,
		TotalAmount:      b.TotalAmount,
		Notes:            b.Notes,
		AdminNotes:       b.AdminNotes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
