package domain

import "time"

// Shared request statuses. Each request kind declares its own finite subset
// in the lifecycle tables; the constants overlap where the names do.
const (
	RequestStatusPending   Status = "PENDING"
	RequestStatusApproved  Status = "APPROVED"
	RequestStatusRejected  Status = "REJECTED"
	RequestStatusContacted Status = "CONTACTED"
	RequestStatusClosed    Status = "CLOSED"
)

// Request is a submitted special-purpose request: delivery-partner
// application, enterprise inquiry or custom-service request. The kind tag
// selects the transition table; Payload carries the kind-specific fields.
type Request struct {
	ID         string
	Kind       EntityKind
	ActorID    *string
	Status     Status
	Payload    map[string]any
	AdminNotes string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Request) EntityID() string       { return r.ID }
func (r *Request) EntityKind() EntityKind { return r.Kind }
func (r *Request) CurrentStatus() Status  { return r.Status }
func (r *Request) SubmitterID() *string   { return r.ActorID }

// PartnerDetails is the payload of a delivery-partner application.
type PartnerDetails struct {
	VehicleDetails  string `json:"vehicle_details"`
	LicenseNumber   string `json:"license_number"`
	ExperienceYears int    `json:"experience_years"`
}

// EnterpriseDetails is the payload of an enterprise inquiry. Submittable
// anonymously, so contact fields are mandatory.
type EnterpriseDetails struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	WorkEmail    string `json:"work_email"`
	Phone        string `json:"phone"`
	Requirements string `json:"requirements"`
}

// CustomServiceDetails is the payload of a custom-service request.
type CustomServiceDetails struct {
	Description   string `json:"description"`
	PickupArea    string `json:"pickup_area"`
	DropArea      string `json:"drop_area"`
	PreferredDate string `json:"preferred_date"`
	Budget        string `json:"budget"`
}
