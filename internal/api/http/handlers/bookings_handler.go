package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/dto"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/service"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.service.Create(c.Context(), actor, service.BookingCreateInput{
		ServiceID:        req.ServiceID,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PickupDate:       req.PickupDate,
		DistanceKM:       req.DistanceKM,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

// List GET /bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	bookings, err := h.service.List(c.Context(), actor, service.BookingListFilter{
		Statuses: parseStatuses(c.Query("status")),
		Limit:    parsePageSize(c),
		Offset:   parseOffset(c),
	})
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.BookingFromDomain(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /bookings/:id.
func (h *BookingsHandler) Get(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	booking, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

// Update PATCH /bookings/:id.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.service.Update(c.Context(), actor, c.Params("id"), service.BookingUpdateInput{
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PickupDate:       req.PickupDate,
		DistanceKM:       req.DistanceKM,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

// Transition POST /bookings/:id/transition.
func (h *BookingsHandler) Transition(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Action) == "" {
		return apperrors.NewValidationError("action required", nil)
	}
	booking, err := h.service.ApplyTransition(c.Context(), actor, c.Params("id"), lifecycle.Action(req.Action))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

// Cancel POST /bookings/:id/cancel. Shorthand for a cancel transition;
// the lifecycle table decides who may cancel from which state.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	booking, err := h.service.ApplyTransition(c.Context(), actor, c.Params("id"), lifecycle.ActionCancel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

// SetAdminNotes PUT /bookings/:id/admin-notes.
func (h *BookingsHandler) SetAdminNotes(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.AdminNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	booking, err := h.service.SetAdminNotes(c.Context(), actor, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BookingFromDomain(booking)})
}

func parseStatuses(raw string) []domain.Status {
	if raw == "" {
		return nil
	}
	var statuses []domain.Status
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statuses = append(statuses, domain.Status(trimmed))
		}
	}
	return statuses
}

func parsePageSize(c *fiber.Ctx) int {
	return parsePositiveInt(c.Query("page_size"), 20)
}

func parseOffset(c *fiber.Ctx) int {
	page := parsePositiveInt(c.Query("page"), 1)
	return (page - 1) * parsePageSize(c)
}

func parsePositiveInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
