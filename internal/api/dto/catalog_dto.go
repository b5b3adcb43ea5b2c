package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// VehicleTypeRequest payload for create and update.
type VehicleTypeRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Capacity    string           `json:"capacity"`
	PricePerKM  *decimal.Decimal `json:"price_per_km"`
	ImageKey    *string          `json:"image_key"`
}

// ServiceRequest payload for create and update.
type ServiceRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	VehicleTypeID string           `json:"vehicle_type_id"`
	IsActive      *bool            `json:"is_active"`
}

// VehicleTypeResponse view.
type VehicleTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Capacity    string          `json:"capacity,omitempty"`
	PricePerKM  decimal.Decimal `json:"price_per_km"`
	ImageKey    *string         `json:"image_key,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ServiceResponse view.
type ServiceResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"base_price"`
	VehicleTypeID string          `json:"vehicle_type_id"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// VehicleTypeFromDomain maps a vehicle type to its response form.
func VehicleTypeFromDomain(vt *domain.VehicleType) VehicleTypeResponse {
	return VehicleTypeResponse{
		ID:          vt.ID,
		Name:        vt.Name,
		Description: vt.Description,
		Capacity:    vt.Capacity,
		PricePerKM:  vt.PricePerKM,
		ImageKey:    vt.ImageKey,
		CreatedAt:   vt.CreatedAt,
		UpdatedAt:   vt.UpdatedAt,
	}
}

// ServiceFromDomain maps a service to its response form.
func ServiceFromDomain(svc *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:            svc.ID,
		Name:          svc.Name,
		Description:   svc.Description,
		BasePrice:     svc.BasePrice,
		VehicleTypeID: svc.VehicleTypeID,
		IsActive:      svc.IsActive,
		CreatedAt:     svc.CreatedAt,
		UpdatedAt:     svc.UpdatedAt,
	}
}
