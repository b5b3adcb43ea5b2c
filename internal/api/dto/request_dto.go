package dto

import (
	"time"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// PartnerRequestPayload payload.
type PartnerRequestPayload struct {
	VehicleDetails  string `json:"vehicle_details"`
	LicenseNumber   string `json:"license_number"`
	ExperienceYears int    `json:"experience_years"`
}

// EnterpriseRequestPayload payload.
type EnterpriseRequestPayload struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	WorkEmail    string `json:"work_email"`
	Phone        string `json:"phone"`
	Requirements string `json:"requirements"`
}

// CustomServiceRequestPayload payload.
type CustomServiceRequestPayload struct {
	Description   string `json:"description"`
	PickupArea    string `json:"pickup_area"`
	DropArea      string `json:"drop_area"`
	PreferredDate string `json:"preferred_date"`
	Budget        string `json:"budget"`
}

// RequestResponse is the full request view.
type RequestResponse struct {
	ID         string            `json:"id"`
	Kind       domain.EntityKind `json:"kind"`
	ActorID    *string           `json:"actor_id,omitempty"`
	Status     domain.Status     `json:"status"`
	Payload    map[string]any    `json:"payload"`
	AdminNotes string            `json:"admin_notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// RequestFromDomain maps a request to its response form.
func RequestFromDomain(r *domain.Request) RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		Kind:       r.Kind,
		ActorID:    r.ActorID,
		Status:     r.Status,
		Payload:    r.Payload,
		AdminNotes: r.AdminNotes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
