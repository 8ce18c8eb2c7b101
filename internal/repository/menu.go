package repository

import (
	"errors"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"gorm.io/gorm"
)

// MenuComposer assembles the read-optimized public menu view for one
// restaurant.
type MenuComposer struct {
	db *gorm.DB
}

// NewMenuComposer creates a menu composer
func NewMenuComposer(db *gorm.DB) *MenuComposer {
	return &MenuComposer{db: db}
}

// MenuSetting is the branding block of the public menu
type MenuSetting struct {
	CompanyName      string  `json:"company_name"`
	LogoPath         *string `json:"logo_path,omitempty"`
	Currency1        string  `json:"currency_1"`
	Currency2        string  `json:"currency_2"`
	BarcodeURL       *string `json:"barcode_url,omitempty"`
	BarcodeImagePath *string `json:"barcode_image_path,omitempty"`
	PrimaryColor     *string `json:"primary_color,omitempty"`
	BackgroundColor  *string `json:"background_color,omitempty"`
}

// MenuProduct is a product as shown on the public menu. Ingredients appear
// by name, and the secondary price is derived from the current rate.
type MenuProduct struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	ImagePath       *string  `json:"image_path,omitempty"`
	PriceCurrency1  float64  `json:"price_currency_1"`
	PriceCurrency2  float64  `json:"price_currency_2"`
	IngredientNames []string `json:"ingredient_names"`
}

// MenuCategory groups products on the public menu
type MenuCategory struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	ImagePath *string       `json:"image_path,omitempty"`
	Products  []MenuProduct `json:"products"`
}

// MenuView is the composed public menu. An inactive restaurant yields only
// the unavailable flag; this is a normal outcome, not an error.
type MenuView struct {
	Unavailable bool           `json:"unavailable,omitempty"`
	Restaurant  string         `json:"restaurant,omitempty"`
	Setting     *MenuSetting   `json:"setting,omitempty"`
	Categories  []MenuCategory `json:"categories,omitempty"`
}

// Compose builds the public menu for a restaurant. Categories and products
// are ordered by name, and products without a category link are left out:
// categories are the only grouping axis of the menu.
func (m *MenuComposer) Compose(restaurant *model.Restaurant) (*MenuView, error) {
	if !restaurant.IsActive {
		return &MenuView{Unavailable: true}, nil
	}

	var setting model.Setting
	if result := m.db.Where("restaurant_id = ?", restaurant.ID).First(&setting); result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		setting = model.Setting{Currency1: "USD", Currency2: "EUR", Rate: 1.0}
	}

	var categories []model.Category
	if result := m.db.Where("restaurant_id = ?", restaurant.ID).Order("name asc").Find(&categories); result.Error != nil {
		return nil, result.Error
	}
	var products []model.Product
	if result := m.db.Where("restaurant_id = ?", restaurant.ID).Order("name asc").Find(&products); result.Error != nil {
		return nil, result.Error
	}
	var ingredients []model.Ingredient
	if result := m.db.Where("restaurant_id = ?", restaurant.ID).Order("name asc").Find(&ingredients); result.Error != nil {
		return nil, result.Error
	}

	ingredientNames := make(map[uint]string, len(ingredients))
	for _, ingredient := range ingredients {
		ingredientNames[ingredient.ID] = ingredient.Name
	}

	menuCategories := make([]MenuCategory, 0, len(categories))
	categoryIndex := make(map[uint]int, len(categories))
	for i, category := range categories {
		menuCategories = append(menuCategories, MenuCategory{
			ID:        category.ID,
			Name:      category.Name,
			ImagePath: category.ImagePath,
			Products:  []MenuProduct{},
		})
		categoryIndex[category.ID] = i
	}

	for _, product := range products {
		categoryIDs, ingredientIDs, err := linkIDs(m.db, product.ID)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(ingredientIDs))
		for _, id := range ingredientIDs {
			if name, ok := ingredientNames[id]; ok {
				names = append(names, name)
			}
		}

		dto := MenuProduct{
			ID:              product.ID,
			Name:            product.Name,
			ImagePath:       product.ImagePath,
			PriceCurrency1:  product.PriceCurrency1,
			PriceCurrency2:  DerivedPrice(product.PriceCurrency1, setting.Rate),
			IngredientNames: names,
		}
		for _, categoryID := range categoryIDs {
			if i, ok := categoryIndex[categoryID]; ok {
				menuCategories[i].Products = append(menuCategories[i].Products, dto)
			}
		}
	}

	return &MenuView{
		Restaurant: restaurant.Name,
		Setting: &MenuSetting{
			CompanyName:      setting.CompanyName,
			LogoPath:         setting.LogoPath,
			Currency1:        setting.Currency1,
			Currency2:        setting.Currency2,
			BarcodeURL:       setting.BarcodeURL,
			BarcodeImagePath: setting.BarcodeImagePath,
			PrimaryColor:     setting.PrimaryColor,
			BackgroundColor:  setting.BackgroundColor,
		},
		Categories: menuCategories,
	}, nil
}
