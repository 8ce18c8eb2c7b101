package repository

import (
	"errors"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingRepo manages the per-restaurant settings row
type SettingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a settings repository
func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

// SettingInput carries the editable settings fields. Saving replaces all of
// them; the logo and barcode image paths are managed by the upload flow and
// are not editable here.
type SettingInput struct {
	CompanyName     string  `json:"company_name"`
	Currency1       string  `json:"currency_1"`
	Currency2       string  `json:"currency_2"`
	Rate            float64 `json:"rate"`
	BarcodeURL      *string `json:"barcode_url,omitempty"`
	PrimaryColor    *string `json:"primary_color,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
}

// Get returns the settings row for a restaurant, creating it with defaults
// when missing. Lookup is strictly by restaurant id.
func (r *SettingRepo) Get(restaurantID uuid.UUID) (*model.Setting, error) {
	var setting model.Setting
	result := r.db.Where("restaurant_id = ?", restaurantID).First(&setting)
	if result.Error == nil {
		return &setting, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting = model.Setting{
		RestaurantID: restaurantID,
		Currency1:    "USD",
		Currency2:    "EUR",
		Rate:         1.0,
	}
	if result := r.db.Create(&setting); result.Error != nil {
		return nil, result.Error
	}
	return &setting, nil
}

// Save replaces the editable fields of the restaurant's settings row
func (r *SettingRepo) Save(restaurantID uuid.UUID, input SettingInput) (*model.Setting, error) {
	setting, err := r.Get(restaurantID)
	if err != nil {
		return nil, err
	}

	setting.CompanyName = input.CompanyName
	setting.Currency1 = input.Currency1
	setting.Currency2 = input.Currency2
	setting.Rate = input.Rate
	setting.BarcodeURL = input.BarcodeURL
	setting.PrimaryColor = input.PrimaryColor
	setting.BackgroundColor = input.BackgroundColor

	if result := r.db.Save(setting); result.Error != nil {
		return nil, result.Error
	}
	return setting, nil
}

// SetLogo records the uploaded logo reference
func (r *SettingRepo) SetLogo(restaurantID uuid.UUID, path string) (*model.Setting, error) {
	return r.setImagePath(restaurantID, "logo_path", path)
}

// SetBarcodeImage records the uploaded barcode image reference
func (r *SettingRepo) SetBarcodeImage(restaurantID uuid.UUID, path string) (*model.Setting, error) {
	return r.setImagePath(restaurantID, "barcode_image_path", path)
}

func (r *SettingRepo) setImagePath(restaurantID uuid.UUID, column, path string) (*model.Setting, error) {
	setting, err := r.Get(restaurantID)
	if err != nil {
		return nil, err
	}
	if result := r.db.Model(setting).Update(column, path); result.Error != nil {
		return nil, result.Error
	}
	return setting, nil
}
