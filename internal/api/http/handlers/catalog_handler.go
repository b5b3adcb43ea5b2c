package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/dto"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/service"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// CatalogHandler manages vehicle-type and service catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// ListVehicleTypes GET /catalog/vehicle-types.
func (h *CatalogHandler) ListVehicleTypes(c *fiber.Ctx) error {
	vehicleTypes, err := h.service.ListVehicleTypes(c.Context(), c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.VehicleTypeResponse, 0, len(vehicleTypes))
	for i := range vehicleTypes {
		items = append(items, dto.VehicleTypeFromDomain(&vehicleTypes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetVehicleType GET /catalog/vehicle-types/:id.
func (h *CatalogHandler) GetVehicleType(c *fiber.Ctx) error {
	vt, err := h.service.GetVehicleType(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.VehicleTypeFromDomain(vt)})
}

// CreateVehicleType POST /catalog/vehicle-types.
func (h *CatalogHandler) CreateVehicleType(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.VehicleTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	vt, err := h.service.CreateVehicleType(c.Context(), actor, service.VehicleTypeInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		PricePerKM:  req.PricePerKM,
		ImageKey:    req.ImageKey,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.VehicleTypeFromDomain(vt)})
}

// UpdateVehicleType PATCH /catalog/vehicle-types/:id.
func (h *CatalogHandler) UpdateVehicleType(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.VehicleTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	vt, err := h.service.UpdateVehicleType(c.Context(), actor, c.Params("id"), service.VehicleTypeInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		PricePerKM:  req.PricePerKM,
		ImageKey:    req.ImageKey,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.VehicleTypeFromDomain(vt)})
}

// ListServices GET /catalog/services.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	includeInactive := c.QueryBool("include_inactive")
	services, err := h.service.ListServices(c.Context(), actor, includeInactive, c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, dto.ServiceFromDomain(&services[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetService GET /catalog/services/:id.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.service.GetService(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ServiceFromDomain(svc)})
}

// CreateService POST /catalog/services.
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	svc, err := h.service.CreateService(c.Context(), actor, service.ServiceInput{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		VehicleTypeID: req.VehicleTypeID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ServiceFromDomain(svc)})
}

// UpdateService PATCH /catalog/services/:id.
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	svc, err := h.service.UpdateService(c.Context(), actor, c.Params("id"), service.ServiceInput{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		VehicleTypeID: req.VehicleTypeID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ServiceFromDomain(svc)})
}
