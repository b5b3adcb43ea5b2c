package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleType is catalog reference data for transport vehicles.
type VehicleType struct {
	ID          string
	Name        string
	Description string
	Capacity    string
	PricePerKM  decimal.Decimal
	ImageKey    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a bookable moving/transport offering tied to a vehicle type.
type Service struct {
	ID            string
	Name          string
	Description   string
	BasePrice     decimal.Decimal
	VehicleTypeID string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
