package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/dto"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/service"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// MessagesHandler manages inbox endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// ContactStaff POST /messages/contact.
func (h *MessagesHandler) ContactStaff(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sent, err := h.service.ContactStaff(c.Context(), actor, req.Subject, req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"delivered": len(sent)}})
}

// ListMine GET /messages.
func (h *MessagesHandler) ListMine(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	messages, err := h.service.ListMine(c.Context(), actor, parsePageSize(c), parseOffset(c))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.MessageFromDomain(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /messages/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	msg, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MessageFromDomain(msg)})
}

// MarkRead POST /messages/:id/read.
func (h *MessagesHandler) MarkRead(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	msg, err := h.service.MarkRead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MessageFromDomain(msg)})
}

// Reply POST /messages/:id/reply.
func (h *MessagesHandler) Reply(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.Reply(c.Context(), actor, c.Params("id"), req.Reply)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MessageFromDomain(msg)})
}
