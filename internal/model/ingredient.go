package model

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a tenant-owned ingredient. Names are unique per restaurant.
type Ingredient struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(200);not null;uniqueIndex:uq_ingredient_restaurant_name"`
	ImagePath    *string   `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	RestaurantID uuid.UUID `json:"restaurant_id" gorm:"type:uuid;index;not null;uniqueIndex:uq_ingredient_restaurant_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
