package model

import (
	"time"

	"github.com/google/uuid"
)

// Product stores only the primary-currency price. The secondary-currency
// price is derived at read time from the restaurant's exchange rate and is
// never persisted.
type Product struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null"`
	ImagePath      *string   `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	PriceCurrency1 float64   `json:"price_currency_1" gorm:"not null"`
	RestaurantID   uuid.UUID `json:"restaurant_id" gorm:"type:uuid;index;not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductCategory links a product to a category. Deleting a category is
// refused while any link references it.
type ProductCategory struct {
	ProductID  uint `json:"product_id" gorm:"primaryKey"`
	CategoryID uint `json:"category_id" gorm:"primaryKey"`
}

// TableName keeps the legacy association table name
func (ProductCategory) TableName() string {
	return "product_categories"
}

// ProductIngredient links a product to an ingredient. Links are removed
// when either side is deleted.
type ProductIngredient struct {
	ProductID    uint `json:"product_id" gorm:"primaryKey"`
	IngredientID uint `json:"ingredient_id" gorm:"primaryKey"`
}

// TableName keeps the legacy association table name
func (ProductIngredient) TableName() string {
	return "product_ingredients"
}
