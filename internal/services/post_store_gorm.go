package services

import (
	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
	"gorm.io/gorm"
)

type gormPostStore struct {
	db *gorm.DB
}

func NewGormPostStore(db *gorm.DB) PostStore {
	return &gormPostStore{db: db}
}

func (s *gormPostStore) CreatePost(p *models.Post) error {
	return s.db.Create(p).Error
}

func (s *gormPostStore) PostByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormPostStore) ListPosts(q *dto.ListPostsQuery) ([]models.Post, error) {
	query := s.db.Preload("Author").Model(&models.Post{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		query = query.Where("title ILIKE ?", "%"+q.Search+"%")
	}

	switch q.Sort {
	case "votes":
		query = query.Order("vote_count DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var posts []models.Post
	err := query.Limit(q.Limit).Offset(q.Offset).Find(&posts).Error
	return posts, err
}

func (s *gormPostStore) UpdatePostStatus(id uuid.UUID, status models.PostStatus) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).Update("status", status).Error
}

func (s *gormPostStore) DeletePost(p *models.Post) error {
	return s.db.Delete(p).Error
}

func (s *gormPostStore) HasVote(postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.PostVote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormPostStore) AddVote(v *models.PostVote) error {
	return s.db.Create(v).Error
}

func (s *gormPostStore) RemoveVote(postID, userID uuid.UUID) error {
	return s.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostVote{}).Error
}

func (s *gormPostStore) AdjustVoteCount(postID uuid.UUID, delta int) error {
	return s.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("vote_count", gorm.Expr("GREATEST(vote_count + ?, 0)", delta)).Error
}

func (s *gormPostStore) VotedPostIDs(userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	var votes []models.PostVote
	err := s.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&votes).Error
	if err != nil {
		return nil, err
	}

	voted := make(map[uuid.UUID]bool, len(votes))
	for _, v := range votes {
		voted[v.PostID] = true
	}
	return voted, nil
}

func (s *gormPostStore) CreateComment(c *models.Comment) error {
	return s.db.Create(c).Error
}

func (s *gormPostStore) CommentsByPost(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *gormPostStore) AdjustCommentCount(postID uuid.UUID, delta int) error {
	return s.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", gorm.Expr("GREATEST(comment_count + ?, 0)", delta)).Error
}
