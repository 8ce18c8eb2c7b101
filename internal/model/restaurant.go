package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the tenant record. Every scoped resource carries its id,
// and the slug is the public address of its menu.
type Restaurant struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	Slug         string    `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null"`
	LogoImage    *string   `json:"logo_image,omitempty" gorm:"type:varchar(255)"`
	Username     *string   `json:"username,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash *string   `json:"-" gorm:"type:varchar(255)"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns the uuid primary key
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
