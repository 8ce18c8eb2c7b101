package repository

import (
	"errors"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientRepo is the tenant-scoped ingredient store
type IngredientRepo struct {
	db *gorm.DB
}

// NewIngredientRepo creates an ingredient repository
func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

// List returns the restaurant's ingredients ordered by name
func (r *IngredientRepo) List(restaurantID uuid.UUID) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	result := r.db.Where("restaurant_id = ?", restaurantID).Order("name asc").Find(&ingredients)
	if result.Error != nil {
		return nil, result.Error
	}
	return ingredients, nil
}

// Get returns one ingredient of the restaurant
func (r *IngredientRepo) Get(restaurantID uuid.UUID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	result := r.db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &ingredient, nil
}

// Create inserts an ingredient. Names are unique within the restaurant.
func (r *IngredientRepo) Create(restaurantID uuid.UUID, name string) (*model.Ingredient, error) {
	var count int64
	result := r.db.Model(&model.Ingredient{}).
		Where("name = ? AND restaurant_id = ?", name, restaurantID).
		Count(&count)
	if result.Error != nil {
		return nil, result.Error
	}
	if count > 0 {
		return nil, ErrConflict
	}

	ingredient := model.Ingredient{
		Name:         name,
		RestaurantID: restaurantID,
	}
	if result := r.db.Create(&ingredient); result.Error != nil {
		return nil, result.Error
	}
	return &ingredient, nil
}

// Update renames an ingredient of the restaurant
func (r *IngredientRepo) Update(restaurantID uuid.UUID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := r.Get(restaurantID, id)
	if err != nil {
		return nil, err
	}

	if name != ingredient.Name {
		var count int64
		result := r.db.Model(&model.Ingredient{}).
			Where("name = ? AND id != ? AND restaurant_id = ?", name, id, restaurantID).
			Count(&count)
		if result.Error != nil {
			return nil, result.Error
		}
		if count > 0 {
			return nil, ErrConflict
		}
	}

	ingredient.Name = name
	if result := r.db.Save(ingredient); result.Error != nil {
		return nil, result.Error
	}
	return ingredient, nil
}

// Delete removes an ingredient and unlinks it from every product in the
// same transaction.
func (r *IngredientRepo) Delete(restaurantID uuid.UUID, id uint) error {
	ingredient, err := r.Get(restaurantID, id)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("ingredient_id = ?", ingredient.ID).Delete(&model.ProductIngredient{}); result.Error != nil {
			return result.Error
		}
		return tx.Delete(ingredient).Error
	})
}

// SetImage records the uploaded ingredient image reference
func (r *IngredientRepo) SetImage(restaurantID uuid.UUID, id uint, path string) (*model.Ingredient, error) {
	ingredient, err := r.Get(restaurantID, id)
	if err != nil {
		return nil, err
	}
	if result := r.db.Model(ingredient).Update("image_path", path); result.Error != nil {
		return nil, result.Error
	}
	return ingredient, nil
}
