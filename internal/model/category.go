package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a tenant-owned menu grouping. Names are unique per
// restaurant, not globally.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:uq_category_restaurant_name"`
	ImagePath    *string   `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	RestaurantID uuid.UUID `json:"restaurant_id" gorm:"type:uuid;index;not null;uniqueIndex:uq_category_restaurant_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
