package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is an admin-broadcast banner. Deactivating (Active=false) is the
// soft delete; hard delete removes the row entirely.
type Alert struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      AlertType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
