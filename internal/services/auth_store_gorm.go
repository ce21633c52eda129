package services

import (
	"github.com/google/uuid"
	"github.com/myville/backend/internal/models"
	"gorm.io/gorm"
)

// gormUserStore is the Postgres-backed UserStore.
type gormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *gormUserStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) UpdateUser(id uuid.UUID, updates map[string]interface{}) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

func (s *gormUserStore) DeleteUser(u *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
}

func (s *gormUserStore) SaveRefreshToken(t *models.RefreshToken) error {
	return s.db.Create(t).Error
}

func (s *gormUserStore) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", hash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *gormUserStore) RevokeRefreshToken(id uuid.UUID) error {
	return s.db.Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true).Error
}

func (s *gormUserStore) RevokeRefreshTokenByHash(hash string) error {
	return s.db.Model(&models.RefreshToken{}).Where("token_hash = ?", hash).Update("revoked", true).Error
}
