package domain

import (
	"fmt"
	"time"
)

// Role enumerates the mutually exclusive actor roles.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
	RoleDriver   Role = "DRIVER"
)

// ParseRole validates a role string at the boundary. Unknown values are
// rejected rather than defaulted.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleCustomer, RoleStaff, RoleAdmin, RoleDriver:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Actor is any registered party: customer, staff, admin or driver.
type Actor struct {
	ID                 string
	Name               string
	Email              string
	Phone              string
	Address            string
	PasswordHash       string
	Role               Role
	IsStaff            bool
	IsCustomer         bool
	IsDriver           bool
	Active             bool
	EmailNotifications bool
	SMSNotifications   bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeFlags derives the boolean capability flags from the authoritative
// role field. Runs before every persistence write so the flags cannot drift.
func (a *Actor) NormalizeFlags() {
	switch a.Role {
	case RoleAdmin:
		a.IsStaff = true
		a.IsCustomer = false
		a.IsDriver = false
	case RoleStaff:
		a.IsStaff = true
		a.IsCustomer = false
		a.IsDriver = false
	case RoleDriver:
		a.IsStaff = false
		a.IsDriver = true
		a.IsCustomer = false
	default:
		a.IsStaff = false
		a.IsCustomer = true
		a.IsDriver = false
	}
}

// Elevated reports whether the actor holds staff-level privilege.
func (a *Actor) Elevated() bool {
	return a != nil && (a.Role == RoleStaff || a.Role == RoleAdmin)
}

// IsAdmin reports superuser privilege.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
