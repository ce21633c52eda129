package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/middleware"
)

// requireUserID extracts the authenticated user's ID. On failure it writes
// the 401 response and reports ok=false; the caller just returns nil.
func requireUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter as a UUID, writing the 400 response
// itself on failure.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}
