package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
	"github.com/myville/backend/internal/services"
)

// AlertService is the surface this handler needs from the alert layer.
type AlertService interface {
	List(activeOnly bool) ([]models.Alert, error)
	Create(createdBy uuid.UUID, req *dto.CreateAlertRequest) (*models.Alert, error)
	Toggle(id uuid.UUID) (*models.Alert, error)
	Delete(id uuid.UUID) error
}

type AlertHandler struct {
	alertService AlertService
}

func NewAlertHandler(alertService AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// List returns active alerts for the public banner. A store failure degrades
// to no banner rather than an error page.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.alertService.List(true)
	if err != nil {
		slog.Error("alert list read failed", "error", err)
		return c.JSON([]models.Alert{})
	}

	return c.JSON(alerts)
}

// ListAll returns every alert, active or not, for the admin panel.
func (h *AlertHandler) ListAll(c *fiber.Ctx) error {
	alerts, err := h.alertService.List(false)
	if err != nil {
		slog.Error("alert list read failed", "error", err)
		return c.JSON([]models.Alert{})
	}

	return c.JSON(alerts)
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}

	var req dto.CreateAlertRequest
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

	alert, err := h.alertService.Create(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(alert)
}

func (h *AlertHandler) Toggle(c *fiber.Ctx) error {
	alertID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	alert, err := h.alertService.Toggle(alertID)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Alert not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to toggle alert",
		})
	}

	return c.JSON(alert)
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	alertID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.alertService.Delete(alertID); err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Alert not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete alert",
		})
	}

	return c.JSON(fiber.Map{"message": "Alert deleted"})
}
