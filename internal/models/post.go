package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a citizen-submitted civic issue report. VoteCount and CommentCount
// are denormalized and updated in lockstep with vote/comment writes rather
// than recomputed from joins on every read.
type Post struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Title        string         `gorm:"size:100;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Category     PostCategory   `gorm:"type:varchar(20);not null;index" json:"category"`
	Status       PostStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Lat          *float64       `gorm:"type:decimal(10,8)" json:"lat"`
	Lng          *float64       `gorm:"type:decimal(11,8)" json:"lng"`
	Address      *string        `gorm:"size:500" json:"address"`
	MediaURL     *string        `gorm:"size:500" json:"media_url"`
	VoteCount    int            `gorm:"default:0" json:"vote_count"`
	CommentCount int            `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// PostVote records a single user's endorsement of a post. The composite
// unique index is the invariant: at most one row per (post, user) pair.
type PostVote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_votes_post_user" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_votes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
