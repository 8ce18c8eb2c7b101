package model

import (
	"time"

	"github.com/google/uuid"
)

// Setting holds the branding and currency configuration of one restaurant.
// Exactly one row exists per restaurant; it is created together with the
// restaurant and looked up by restaurant id only.
type Setting struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	RestaurantID     uuid.UUID `json:"restaurant_id" gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName      string    `json:"company_name" gorm:"type:varchar(200);default:''"`
	LogoPath         *string   `json:"logo_path,omitempty" gorm:"type:varchar(255)"`
	Currency1        string    `json:"currency_1" gorm:"type:varchar(10);default:'USD'"`
	Currency2        string    `json:"currency_2" gorm:"type:varchar(10);default:'EUR'"`
	Rate             float64   `json:"rate" gorm:"default:1.0"`
	BarcodeURL       *string   `json:"barcode_url,omitempty" gorm:"type:text"`
	BarcodeImagePath *string   `json:"barcode_image_path,omitempty" gorm:"type:varchar(255)"`
	PrimaryColor     *string   `json:"primary_color,omitempty" gorm:"type:varchar(20)"`
	BackgroundColor  *string   `json:"background_color,omitempty" gorm:"type:varchar(20)"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
