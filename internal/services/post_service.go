package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/metrics"
	"github.com/myville/backend/internal/models"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not allowed")

	// ErrReadFailed marks store failures on read paths. Handlers degrade
	// these to an empty list instead of surfacing an error.
	ErrReadFailed = errors.New("read failed")
)

// PostStore is the persistence surface for posts, votes and comments.
type PostStore interface {
	CreatePost(p *models.Post) error
	PostByID(id uuid.UUID) (*models.Post, error)
	ListPosts(q *dto.ListPostsQuery) ([]models.Post, error)
	UpdatePostStatus(id uuid.UUID, status models.PostStatus) error
	DeletePost(p *models.Post) error

	HasVote(postID, userID uuid.UUID) (bool, error)
	AddVote(v *models.PostVote) error
	RemoveVote(postID, userID uuid.UUID) error
	AdjustVoteCount(postID uuid.UUID, delta int) error
	VotedPostIDs(userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	CreateComment(c *models.Comment) error
	CommentsByPost(postID uuid.UUID) ([]models.Comment, error)
	AdjustCommentCount(postID uuid.UUID, delta int) error
}

type PostService struct {
	store PostStore
}

func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

func (s *PostService) Create(authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	category, err := models.ParsePostCategory(req.Category)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Status:      models.StatusPending,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Address:     req.Address,
		MediaURL:    req.MediaURL,
	}

	if err := s.store.CreatePost(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	metrics.PostsCreatedTotal.WithLabelValues(string(category)).Inc()

	return s.Get(post.ID, authorID)
}

// List returns the filtered feed. viewerID marks which posts the viewer has
// voted on; uuid.Nil means anonymous and every Voted flag is false.
func (s *PostService) List(q *dto.ListPostsQuery, viewerID uuid.UUID) ([]dto.PostResponse, error) {
	if q.Category != "" {
		if _, err := models.ParsePostCategory(q.Category); err != nil {
			return nil, err
		}
	}
	if q.Status != "" {
		if _, err := models.ParsePostStatus(q.Status); err != nil {
			return nil, err
		}
	}
	if q.Limit <= 0 {
		q.Limit = 20
	} else if q.Limit > 50 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	posts, err := s.store.ListPosts(q)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w: %w", ErrReadFailed, err)
	}

	voted := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil && len(posts) > 0 {
		ids := make([]uuid.UUID, len(posts))
		for i := range posts {
			ids[i] = posts[i].ID
		}
		voted, err = s.store.VotedPostIDs(viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load votes: %w: %w", ErrReadFailed, err)
		}
	}

	out := make([]dto.PostResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i], voted[posts[i].ID])
	}
	return out, nil
}

func (s *PostService) Get(id, viewerID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.store.PostByID(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	voted := false
	if viewerID != uuid.Nil {
		voted, err = s.store.HasVote(id, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load vote: %w", err)
		}
	}

	resp := toPostResponse(post, voted)
	return &resp, nil
}

// ToggleVote flips the caller's vote on a post and returns the confirmed
// state from the database, never an optimistic guess.
func (s *PostService) ToggleVote(postID, userID uuid.UUID) (*dto.VoteResponse, error) {
	if _, err := s.store.PostByID(postID); err != nil {
		return nil, ErrPostNotFound
	}

	hasVote, err := s.store.HasVote(postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vote: %w", err)
	}

	if hasVote {
		if err := s.store.RemoveVote(postID, userID); err != nil {
			return nil, fmt.Errorf("failed to remove vote: %w", err)
		}
		if err := s.store.AdjustVoteCount(postID, -1); err != nil {
			return nil, fmt.Errorf("failed to update vote count: %w", err)
		}
		metrics.VotesToggledTotal.WithLabelValues("off").Inc()
	} else {
		vote := &models.PostVote{ID: uuid.New(), PostID: postID, UserID: userID}
		if err := s.store.AddVote(vote); err != nil {
			return nil, fmt.Errorf("failed to add vote: %w", err)
		}
		if err := s.store.AdjustVoteCount(postID, 1); err != nil {
			return nil, fmt.Errorf("failed to update vote count: %w", err)
		}
		metrics.VotesToggledTotal.WithLabelValues("on").Inc()
	}

	post, err := s.store.PostByID(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	return &dto.VoteResponse{Voted: !hasVote, Votes: post.VoteCount}, nil
}

func (s *PostService) UpdateStatus(postID uuid.UUID, req *dto.UpdateStatusRequest) (*dto.PostResponse, error) {
	status, err := models.ParsePostStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.PostByID(postID); err != nil {
		return nil, ErrPostNotFound
	}

	if err := s.store.UpdatePostStatus(postID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.Get(postID, uuid.Nil)
}

// Delete removes a post. Authors can delete their own posts; admins can
// delete any.
func (s *PostService) Delete(postID uuid.UUID, actor *models.User) error {
	post, err := s.store.PostByID(postID)
	if err != nil {
		return ErrPostNotFound
	}

	if post.AuthorID != actor.ID && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}

	return s.store.DeletePost(post)
}

func (s *PostService) AddComment(postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.store.PostByID(postID); err != nil {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}

	if err := s.store.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if err := s.store.AdjustCommentCount(postID, 1); err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	comments, err := s.store.CommentsByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}
	for i := range comments {
		if comments[i].ID == comment.ID {
			resp := toCommentResponse(&comments[i])
			return &resp, nil
		}
	}
	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *PostService) Comments(postID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.store.PostByID(postID); err != nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.store.CommentsByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w: %w", ErrReadFailed, err)
	}

	out := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		out[i] = toCommentResponse(&comments[i])
	}
	return out, nil
}

func toPostResponse(p *models.Post, voted bool) dto.PostResponse {
	return dto.PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		AuthorName:   p.Author.FullName,
		AuthorAvatar: p.Author.AvatarURL,
		AuthorCity:   p.Author.City,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Status:       p.Status,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Address:      p.Address,
		MediaURL:     p.MediaURL,
		VoteCount:    p.VoteCount,
		CommentCount: p.CommentCount,
		Voted:        voted,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toCommentResponse(c *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:           c.ID,
		PostID:       c.PostID,
		AuthorID:     c.AuthorID,
		AuthorName:   c.Author.FullName,
		AuthorAvatar: c.Author.AvatarURL,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
	}
}
