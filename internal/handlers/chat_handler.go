package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Complete proxies the assistant conversation. On upstream failure the body
// still carries the canned apology so the client can render it directly.
func (h *ChatHandler) Complete(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	text, err := h.chatService.Complete(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ChatResponse{Text: text})
	}

	return c.JSON(dto.ChatResponse{Text: text})
}
