package repository

import (
	"errors"
	"fmt"

	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/pkg/hashutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantRepo manages tenant records and resolves public addresses
type RestaurantRepo struct {
	db *gorm.DB
}

// NewRestaurantRepo creates a restaurant repository
func NewRestaurantRepo(db *gorm.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// RestaurantInput carries the admin-editable restaurant fields. Password is
// plaintext here and hashed before it touches the database; an empty
// password on update keeps the stored hash.
type RestaurantInput struct {
	Name     string  `json:"name"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// List returns all restaurants ordered by name
func (r *RestaurantRepo) List() ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if result := r.db.Order("name asc").Find(&restaurants); result.Error != nil {
		return nil, result.Error
	}
	return restaurants, nil
}

// GetBySlug resolves a restaurant by its slug
func (r *RestaurantRepo) GetBySlug(slug string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if result := r.db.Where("slug = ?", slug).First(&restaurant); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &restaurant, nil
}

// GetByIDOrSlug resolves a restaurant from either form of address. Admin
// endpoints accept both, so a uuid parse is attempted first and anything
// that does not parse is treated as a slug.
func (r *RestaurantRepo) GetByIDOrSlug(token string) (*model.Restaurant, error) {
	if id, err := uuid.Parse(token); err == nil {
		var restaurant model.Restaurant
		if result := r.db.Where("id = ?", id).First(&restaurant); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, result.Error
		}
		return &restaurant, nil
	}
	return r.GetBySlug(token)
}

// Create inserts a restaurant together with its default settings row. The
// slug is generated here, once, and never changes afterwards.
func (r *RestaurantRepo) Create(input RestaurantInput) (*model.Restaurant, error) {
	if err := r.checkNameConflict(input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	slug, err := r.uniqueSlug(input.Name)
	if err != nil {
		return nil, err
	}

	restaurant := model.Restaurant{
		Name:     input.Name,
		Slug:     slug,
		Username: normalizeUsername(input.Username),
		IsActive: true,
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}

	if restaurant.Username != nil {
		if err := r.checkUsernameConflict(*restaurant.Username, uuid.Nil); err != nil {
			return nil, err
		}
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := hashutil.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		restaurant.PasswordHash = &hash
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&restaurant); result.Error != nil {
			return result.Error
		}
		setting := model.Setting{
			RestaurantID: restaurant.ID,
			Currency1:    "USD",
			Currency2:    "EUR",
			Rate:         1.0,
		}
		if result := tx.Create(&setting); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Update changes the editable fields. The slug stays as assigned at
// creation even when the name changes, keeping public menu URLs stable.
func (r *RestaurantRepo) Update(token string, input RestaurantInput) (*model.Restaurant, error) {
	restaurant, err := r.GetByIDOrSlug(token)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != restaurant.Name {
		if err := r.checkNameConflict(input.Name, restaurant.ID); err != nil {
			return nil, err
		}
		restaurant.Name = input.Name
	}

	if input.Username != nil {
		username := normalizeUsername(input.Username)
		if username != nil {
			if err := r.checkUsernameConflict(*username, restaurant.ID); err != nil {
				return nil, err
			}
		}
		restaurant.Username = username
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := hashutil.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		restaurant.PasswordHash = &hash
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}

	if result := r.db.Save(restaurant); result.Error != nil {
		return nil, result.Error
	}
	return restaurant, nil
}

// ToggleActive flips the active flag
func (r *RestaurantRepo) ToggleActive(token string) (*model.Restaurant, error) {
	restaurant, err := r.GetByIDOrSlug(token)
	if err != nil {
		return nil, err
	}
	restaurant.IsActive = !restaurant.IsActive
	if result := r.db.Save(restaurant); result.Error != nil {
		return nil, result.Error
	}
	return restaurant, nil
}

// Delete removes a restaurant and its settings row. Deletion is refused
// while the restaurant still owns categories, ingredients or products.
func (r *RestaurantRepo) Delete(token string) error {
	restaurant, err := r.GetByIDOrSlug(token)
	if err != nil {
		return err
	}

	var owned int64
	for _, m := range []interface{}{&model.Category{}, &model.Ingredient{}, &model.Product{}} {
		var count int64
		if result := r.db.Model(m).Where("restaurant_id = ?", restaurant.ID).Count(&count); result.Error != nil {
			return result.Error
		}
		owned += count
	}
	if owned > 0 {
		return ErrConflict
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&model.Setting{}); result.Error != nil {
			return result.Error
		}
		if result := tx.Delete(restaurant); result.Error != nil {
			return result.Error
		}
		return nil
	})
}

// SetLogo records the uploaded logo reference
func (r *RestaurantRepo) SetLogo(id uuid.UUID, path string) error {
	result := r.db.Model(&model.Restaurant{}).Where("id = ?", id).Update("logo_image", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByUsername looks up a restaurant by its manager login name
func (r *RestaurantRepo) FindByUsername(username string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if result := r.db.Where("username = ?", username).First(&restaurant); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &restaurant, nil
}

// uniqueSlug probes the generated slug against existing rows, appending -2,
// -3, ... until it is free.
func (r *RestaurantRepo) uniqueSlug(name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "restaurant"
	}

	slug := base
	for suffix := 2; ; suffix++ {
		var count int64
		if result := r.db.Model(&model.Restaurant{}).Where("slug = ?", slug).Count(&count); result.Error != nil {
			return "", result.Error
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (r *RestaurantRepo) checkNameConflict(name string, exclude uuid.UUID) error {
	var count int64
	result := r.db.Model(&model.Restaurant{}).Where("name = ? AND id != ?", name, exclude).Count(&count)
	if result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return ErrConflict
	}
	return nil
}

func (r *RestaurantRepo) checkUsernameConflict(username string, exclude uuid.UUID) error {
	var count int64
	result := r.db.Model(&model.Restaurant{}).Where("username = ? AND id != ?", username, exclude).Count(&count)
	if result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return ErrConflict
	}
	return nil
}

func normalizeUsername(username *string) *string {
	if username == nil || *username == "" {
		return nil
	}
	return username
}
