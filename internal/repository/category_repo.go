package repository

import (
	"errors"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepo is the tenant-scoped category store. Every query carries the
// restaurant id, so an id belonging to another restaurant behaves exactly
// like an unknown id.
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo creates a category repository
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List returns the restaurant's categories ordered by name
func (r *CategoryRepo) List(restaurantID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	result := r.db.Where("restaurant_id = ?", restaurantID).Order("name asc").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// Get returns one category of the restaurant
func (r *CategoryRepo) Get(restaurantID uuid.UUID, id uint) (*model.Category, error) {
	var category model.Category
	result := r.db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// Create inserts a category. Names are unique within the restaurant.
func (r *CategoryRepo) Create(restaurantID uuid.UUID, name string) (*model.Category, error) {
	var count int64
	result := r.db.Model(&model.Category{}).
		Where("name = ? AND restaurant_id = ?", name, restaurantID).
		Count(&count)
	if result.Error != nil {
		return nil, result.Error
	}
	if count > 0 {
		return nil, ErrConflict
	}

	category := model.Category{
		Name:         name,
		RestaurantID: restaurantID,
	}
	if result := r.db.Create(&category); result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

// Update renames a category of the restaurant
func (r *CategoryRepo) Update(restaurantID uuid.UUID, id uint, name string) (*model.Category, error) {
	category, err := r.Get(restaurantID, id)
	if err != nil {
		return nil, err
	}

	if name != category.Name {
		var count int64
		result := r.db.Model(&model.Category{}).
			Where("name = ? AND id != ? AND restaurant_id = ?", name, id, restaurantID).
			Count(&count)
		if result.Error != nil {
			return nil, result.Error
		}
		if count > 0 {
			return nil, ErrConflict
		}
	}

	category.Name = name
	if result := r.db.Save(category); result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}

// Delete removes a category. Deletion is refused while any product link
// still references it.
func (r *CategoryRepo) Delete(restaurantID uuid.UUID, id uint) error {
	category, err := r.Get(restaurantID, id)
	if err != nil {
		return err
	}

	var links int64
	result := r.db.Model(&model.ProductCategory{}).Where("category_id = ?", category.ID).Count(&links)
	if result.Error != nil {
		return result.Error
	}
	if links > 0 {
		return ErrConflict
	}

	return r.db.Delete(category).Error
}

// SetImage records the uploaded category image reference
func (r *CategoryRepo) SetImage(restaurantID uuid.UUID, id uint, path string) (*model.Category, error) {
	category, err := r.Get(restaurantID, id)
	if err != nil {
		return nil, err
	}
	if result := r.db.Model(category).Update("image_path", path); result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}
