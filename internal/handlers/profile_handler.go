package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/services"
	"github.com/myville/backend/internal/storage"
)

type ProfileHandler struct {
	authService *services.AuthService
	media       *storage.MediaStore
}

func NewProfileHandler(authService *services.AuthService, media *storage.MediaStore) *ProfileHandler {
	return &ProfileHandler{authService: authService, media: media}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}

	resp, err := h.authService.Profile(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(resp)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateProfileRequest
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

	resp, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update profile",
		})
	}

	return c.JSON(resp)
}

// UploadAvatar stores the uploaded image and points the profile at it.
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing file",
		})
	}
	if file.Size > storage.MaxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Error: true, Message: "File exceeds 5MB limit",
		})
	}

	url, err := saveUpload(file, func(f multipart.File) (string, error) {
		return h.media.SaveAvatar(userID, file.Filename, f)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store file",
		})
	}

	resp, err := h.authService.UpdateProfile(userID, &dto.UpdateProfileRequest{AvatarURL: &url})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update profile",
		})
	}

	return c.JSON(resp)
}

func saveUpload(header *multipart.FileHeader, save func(multipart.File) (string, error)) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return save(f)
}
