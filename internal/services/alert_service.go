package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("alert not found")

// AlertService manages admin-broadcast banners. It talks to gorm directly;
// the queries are too thin to warrant a store seam.
type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// List returns alerts newest first. activeOnly is what the public banner
// endpoint uses; the admin panel passes false to manage the full set.
func (s *AlertService) List(activeOnly bool) ([]models.Alert, error) {
	query := s.db.Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = true")
	}

	alerts := make([]models.Alert, 0)
	if err := query.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (s *AlertService) Create(createdBy uuid.UUID, req *dto.CreateAlertRequest) (*models.Alert, error) {
	alertType, err := models.ParseAlertType(req.Type)
	if err != nil {
		return nil, err
	}

	alert := &models.Alert{
		ID:        uuid.New(),
		Title:     req.Title,
		Message:   req.Message,
		Type:      alertType,
		Active:    true,
		CreatedBy: createdBy,
	}

	if err := s.db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// Toggle flips an alert between active and inactive.
func (s *AlertService) Toggle(id uuid.UUID) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, ErrAlertNotFound
	}

	alert.Active = !alert.Active
	if err := s.db.Model(&alert).Update("active", alert.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle alert: %w", err)
	}
	return &alert, nil
}

func (s *AlertService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Alert{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}
