package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/myville/backend/internal/models"
)

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=3"`
	Category    string   `json:"category" validate:"required"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	MediaURL    *string  `json:"media_url" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// ListPostsQuery captures the feed filters; all fields optional.
type ListPostsQuery struct {
	Category string
	Status   string
	Search   string
	Sort     string // "recent" (default) or "votes"
	Limit    int
	Offset   int
}

// PostResponse is a post joined with its author's display fields, the
// server-side equivalent of the original pre-joined read view.
type PostResponse struct {
	ID           uuid.UUID           `json:"id"`
	AuthorID     uuid.UUID           `json:"author_id"`
	AuthorName   string              `json:"author_name"`
	AuthorAvatar *string             `json:"author_avatar"`
	AuthorCity   string              `json:"author_city"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     models.PostCategory `json:"category"`
	Status       models.PostStatus   `json:"status"`
	Lat          *float64            `json:"lat"`
	Lng          *float64            `json:"lng"`
	Address      *string             `json:"address"`
	MediaURL     *string             `json:"media_url"`
	VoteCount    int                 `json:"vote_count"`
	CommentCount int                 `json:"comment_count"`
	Voted        bool                `json:"voted"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type VoteResponse struct {
	Voted bool `json:"voted"`
	Votes int  `json:"votes"`
}

type CommentResponse struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar *string   `json:"author_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type MediaResponse struct {
	URL string `json:"url"`
}
