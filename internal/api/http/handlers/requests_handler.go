package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/dto"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/service"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// RequestsHandler manages partner, enterprise and custom-service request
// endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// SubmitPartner POST /requests/partner.
func (h *RequestsHandler) SubmitPartner(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.PartnerRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.SubmitPartnerRequest(c.Context(), actor, domain.PartnerDetails{
		VehicleDetails:  req.VehicleDetails,
		LicenseNumber:   req.LicenseNumber,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RequestFromDomain(created)})
}

// SubmitEnterprise POST /requests/enterprise. Anonymous submissions are
// allowed.
func (h *RequestsHandler) SubmitEnterprise(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.EnterpriseRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.SubmitEnterpriseRequest(c.Context(), actor, domain.EnterpriseDetails{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		WorkEmail:    req.WorkEmail,
		Phone:        req.Phone,
		Requirements: req.Requirements,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RequestFromDomain(created)})
}

// SubmitCustomService POST /requests/custom-service.
func (h *RequestsHandler) SubmitCustomService(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.CustomServiceRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.SubmitCustomServiceRequest(c.Context(), actor, domain.CustomServiceDetails{
		Description:   req.Description,
		PickupArea:    req.PickupArea,
		DropArea:      req.DropArea,
		PreferredDate: req.PreferredDate,
		Budget:        req.Budget,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RequestFromDomain(created)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	filter := service.RequestListFilter{
		Statuses: parseStatuses(c.Query("status")),
		Limit:    parsePageSize(c),
		Offset:   parseOffset(c),
	}
	if kindStr := c.Query("kind"); kindStr != "" {
		kind := domain.EntityKind(kindStr)
		filter.Kind = &kind
	}
	requests, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.RequestFromDomain(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	req, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestFromDomain(req)})
}

// Transition POST /requests/:id/transition.
func (h *RequestsHandler) Transition(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Action) == "" {
		return apperrors.NewValidationError("action required", nil)
	}
	updated, err := h.service.ApplyTransition(c.Context(), actor, c.Params("id"), lifecycle.Action(req.Action))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestFromDomain(updated)})
}

// SetAdminNotes PUT /requests/:id/admin-notes.
func (h *RequestsHandler) SetAdminNotes(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.AdminNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.service.SetAdminNotes(c.Context(), actor, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestFromDomain(updated)})
}

// Delete DELETE /requests/:id.
func (h *RequestsHandler) Delete(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
