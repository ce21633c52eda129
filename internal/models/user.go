package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the citizen profile. Role is the only authorization discriminant;
// nothing beyond it gates admin actions.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	City      string         `gorm:"size:100" json:"city"`
	Role      Role           `gorm:"size:20;default:'citizen'" json:"role"`
	AvatarURL *string        `gorm:"size:500" json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
