package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bharatmovers/booking-service/internal/authz"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// CatalogService manages the vehicle-type and service catalog. Reads are
// public; writes require staff privilege and price changes require admin.
type CatalogService struct {
	vehicleTypes repository.VehicleTypeRepository
	services     repository.ServiceRepository
}

// VehicleTypeInput describes create/update payload for a vehicle type.
type VehicleTypeInput struct {
	Name        string
	Description string
	Capacity    string
	PricePerKM  *decimal.Decimal
	ImageKey    *string
}

// ServiceInput describes create/update payload for a bookable service.
type ServiceInput struct {
	Name          string
	Description   string
	BasePrice     *decimal.Decimal
	VehicleTypeID string
	IsActive      *bool
}

// NewCatalogService constructs the service.
func NewCatalogService(vehicleTypes repository.VehicleTypeRepository, services repository.ServiceRepository) *CatalogService {
	return &CatalogService{vehicleTypes: vehicleTypes, services: services}
}

// ListVehicleTypes returns the catalog, optionally name-filtered.
func (s *CatalogService) ListVehicleTypes(ctx context.Context, search string) ([]domain.VehicleType, error) {
	return s.vehicleTypes.List(ctx, search)
}

// GetVehicleType fetches one vehicle type.
func (s *CatalogService) GetVehicleType(ctx context.Context, id string) (*domain.VehicleType, error) {
	return s.vehicleTypes.GetByID(ctx, id)
}

// CreateVehicleType adds a catalog entry. Staff only; setting a price is
// admin only.
func (s *CatalogService) CreateVehicleType(ctx context.Context, actor *domain.Actor, input VehicleTypeInput) (*domain.VehicleType, error) {
	if err := authz.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("invalid vehicle type", map[string]any{"name": "required"})
	}
	vt := &domain.VehicleType{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Capacity:    strings.TrimSpace(input.Capacity),
		ImageKey:    input.ImageKey,
	}
	if input.PricePerKM != nil {
		if err := authz.CanEditPricing(actor); err != nil {
			return nil, err
		}
		if input.PricePerKM.IsNegative() {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		vt.PricePerKM = *input.PricePerKM
	}
	if err := s.vehicleTypes.Create(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

// UpdateVehicleType edits a catalog entry. Staff only; price changes are
// admin only.
func (s *CatalogService) UpdateVehicleType(ctx context.Context, actor *domain.Actor, id string, input VehicleTypeInput) (*domain.VehicleType, error) {
	if err := authz.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	vt, err := s.vehicleTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		vt.Name = name
	}
	if input.Description != "" {
		vt.Description = strings.TrimSpace(input.Description)
	}
	if input.Capacity != "" {
		vt.Capacity = strings.TrimSpace(input.Capacity)
	}
	if input.ImageKey != nil {
		vt.ImageKey = input.ImageKey
	}
	if input.PricePerKM != nil {
		if err := authz.CanEditPricing(actor); err != nil {
			return nil, err
		}
		if input.PricePerKM.IsNegative() {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		vt.PricePerKM = *input.PricePerKM
	}
	if err := s.vehicleTypes.Update(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

// ListServices returns bookable services. Anonymous and customer callers see
// active entries only; staff may request the full catalog.
func (s *CatalogService) ListServices(ctx context.Context, actor *domain.Actor, includeInactive bool, search string) ([]domain.Service, error) {
	activeOnly := true
	if includeInactive && actor != nil && actor.Elevated() {
		activeOnly = false
	}
	return s.services.List(ctx, activeOnly, search)
}

// GetService fetches one service.
func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}

// CreateService adds a bookable service. Staff only; setting a price is
// admin only.
func (s *CatalogService) CreateService(ctx context.Context, actor *domain.Actor, input ServiceInput) (*domain.Service, error) {
	if err := authz.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if input.VehicleTypeID == "" {
		details["vehicle_type_id"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid service", details)
	}
	if _, err := s.vehicleTypes.GetByID(ctx, input.VehicleTypeID); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		VehicleTypeID: input.VehicleTypeID,
		IsActive:      true,
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.BasePrice != nil {
		if err := authz.CanEditPricing(actor); err != nil {
			return nil, err
		}
		if input.BasePrice.IsNegative() {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		svc.BasePrice = *input.BasePrice
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService edits a bookable service. Staff only; price changes are
// admin only.
func (s *CatalogService) UpdateService(ctx context.Context, actor *domain.Actor, id string, input ServiceInput) (*domain.Service, error) {
	if err := authz.CanManageCatalog(actor); err != nil {
		return nil, err
	}
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		svc.Name = name
	}
	if input.Description != "" {
		svc.Description = strings.TrimSpace(input.Description)
	}
	if input.VehicleTypeID != "" && input.VehicleTypeID != svc.VehicleTypeID {
		if _, err := s.vehicleTypes.GetByID(ctx, input.VehicleTypeID); err != nil {
			return nil, err
		}
		svc.VehicleTypeID = input.VehicleTypeID
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.BasePrice != nil {
		if err := authz.CanEditPricing(actor); err != nil {
			return nil, err
		}
		if input.BasePrice.IsNegative() {
			return nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		svc.BasePrice = *input.BasePrice
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
