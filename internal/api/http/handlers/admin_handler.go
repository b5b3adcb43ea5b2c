package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/dto"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	"github.com/bharatmovers/booking-service/internal/service"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// AdminHandler manages account-administration endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// ListActors GET /admin/actors.
func (h *AdminHandler) ListActors(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	filter := repository.ActorFilter{
		Limit:  parsePageSize(c),
		Offset: parseOffset(c),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": roleStr})
		}
		filter.Role = &role
	}
	if c.Query("active") != "" {
		active := c.QueryBool("active")
		filter.Active = &active
	}
	actors, err := h.service.ListActors(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	items := make([]dto.ActorResponse, 0, len(actors))
	for i := range actors {
		items = append(items, dto.ActorFromDomain(&actors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetActor GET /admin/actors/:id.
func (h *AdminHandler) GetActor(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	target, err := h.service.GetActor(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ActorFromDomain(target)})
}

// UpdateActor PATCH /admin/actors/:id.
func (h *AdminHandler) UpdateActor(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.UpdateActorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	target, err := h.service.UpdateActor(c.Context(), actor, c.Params("id"), service.ActorUpdateInput{
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ActorFromDomain(target)})
}
