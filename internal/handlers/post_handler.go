package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/middleware"
	"github.com/myville/backend/internal/services"
	"github.com/myville/backend/internal/storage"
)

type PostHandler struct {
	postService *services.PostService
	media       *storage.MediaStore
}

func NewPostHandler(postService *services.PostService, media *storage.MediaStore) *PostHandler {
	return &PostHandler{postService: postService, media: media}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}

	var req dto.CreatePostRequest
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

	resp, err := h.postService.Create(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List serves the feed. Works with or without a token; a token only adds
// the per-post Voted flag. Store failures degrade to an empty feed rather
// than an error page.
func (h *PostHandler) List(c *fiber.Ctx) error {
	q := dto.ListPostsQuery{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort", "recent"),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}

	viewerID, _ := middleware.GetUserID(c)

	resp, err := h.postService.List(&q, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrReadFailed) {
			slog.Error("post feed read failed", "error", err)
			return c.JSON([]dto.PostResponse{})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(resp)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	viewerID, _ := middleware.GetUserID(c)

	resp, err := h.postService.Get(postID, viewerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Post not found",
		})
	}

	return c.JSON(resp)
}

func (h *PostHandler) ToggleVote(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	resp, err := h.postService.ToggleVote(postID, userID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to toggle vote",
		})
	}

	return c.JSON(resp)
}

func (h *PostHandler) UpdateStatus(c *fiber.Ctx) error {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateStatusRequest
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

	resp, err := h.postService.UpdateStatus(postID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(resp)
}

// Delete removes a post; the route runs behind UserRequired so the actor is
// already loaded into context.
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.postService.Delete(postID, actor); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete post",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return nil
	}
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req dto.CreateCommentRequest
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

	resp, err := h.postService.AddComment(postID, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PostHandler) Comments(c *fiber.Ctx) error {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	resp, err := h.postService.Comments(postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		slog.Error("comments read failed", "post_id", postID, "error", err)
		return c.JSON([]dto.CommentResponse{})
	}

	return c.JSON(resp)
}

// UploadMedia stores a post attachment and returns its URL; the client sends
// the URL back inside the create-post request.
func (h *PostHandler) UploadMedia(c *fiber.Ctx) error {
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
		return h.media.SavePostMedia(userID, file.Filename, f)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MediaResponse{URL: url})
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
