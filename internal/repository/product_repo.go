package repository

import (
	"errors"
	"math"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepo is the tenant-scoped product store. Association sets are
// replaced wholesale inside one transaction, so a concurrent reader never
// observes the emptied intermediate state.
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepo creates a product repository
func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ProductInput carries the writable product fields. The category and
// ingredient id lists fully replace the current association sets.
type ProductInput struct {
	Name           string  `json:"name"`
	PriceCurrency1 float64 `json:"price_currency_1"`
	CategoryIDs    []uint  `json:"category_ids"`
	IngredientIDs  []uint  `json:"ingredient_ids"`
}

// ProductView is the read shape of a product. PriceCurrency2 is computed
// from the restaurant's exchange rate at read time and reflects rate
// changes without any write to the product row.
type ProductView struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	ImagePath      *string `json:"image_path,omitempty"`
	PriceCurrency1 float64 `json:"price_currency_1"`
	PriceCurrency2 float64 `json:"price_currency_2"`
	CategoryIDs    []uint  `json:"category_ids"`
	IngredientIDs  []uint  `json:"ingredient_ids"`
}

// DerivedPrice converts a primary-currency price using the tenant rate,
// rounded to two decimals.
func DerivedPrice(price1, rate float64) float64 {
	return math.Round(price1*rate*100) / 100
}

// List returns the restaurant's products ordered by name, with association
// ids and the derived secondary price attached.
func (r *ProductRepo) List(restaurantID uuid.UUID) ([]ProductView, error) {
	var products []model.Product
	result := r.db.Where("restaurant_id = ?", restaurantID).Order("name asc").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	rate, err := r.tenantRate(restaurantID)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := r.buildView(&products[i], rate)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one product of the restaurant
func (r *ProductRepo) Get(restaurantID uuid.UUID, id uint) (*ProductView, error) {
	product, err := r.fetch(restaurantID, id)
	if err != nil {
		return nil, err
	}
	rate, err := r.tenantRate(restaurantID)
	if err != nil {
		return nil, err
	}
	return r.buildView(product, rate)
}

// Create inserts a product and its association links in one transaction.
// Linked category and ingredient ids must belong to the same restaurant;
// a foreign id aborts the whole operation as not found.
func (r *ProductRepo) Create(restaurantID uuid.UUID, input ProductInput) (*ProductView, error) {
	product := model.Product{
		Name:           input.Name,
		PriceCurrency1: input.PriceCurrency1,
		RestaurantID:   restaurantID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, restaurantID, input); err != nil {
			return err
		}
		if result := tx.Create(&product); result.Error != nil {
			return result.Error
		}
		return insertLinks(tx, product.ID, input)
	})
	if err != nil {
		return nil, err
	}

	rate, err := r.tenantRate(restaurantID)
	if err != nil {
		return nil, err
	}
	return r.buildView(&product, rate)
}

// Update rewrites the product fields and replaces both association sets
// atomically, delete-then-reinsert, in one transaction.
func (r *ProductRepo) Update(restaurantID uuid.UUID, id uint, input ProductInput) (*ProductView, error) {
	product, err := r.fetch(restaurantID, id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, restaurantID, input); err != nil {
			return err
		}

		product.Name = input.Name
		product.PriceCurrency1 = input.PriceCurrency1
		if result := tx.Save(product); result.Error != nil {
			return result.Error
		}

		if err := deleteLinks(tx, product.ID); err != nil {
			return err
		}
		return insertLinks(tx, product.ID, input)
	})
	if err != nil {
		return nil, err
	}

	rate, err := r.tenantRate(restaurantID)
	if err != nil {
		return nil, err
	}
	return r.buildView(product, rate)
}

// Delete removes a product and both of its association sets
func (r *ProductRepo) Delete(restaurantID uuid.UUID, id uint) error {
	product, err := r.fetch(restaurantID, id)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, product.ID); err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

// SetImage records the uploaded product image reference
func (r *ProductRepo) SetImage(restaurantID uuid.UUID, id uint, path string) (*ProductView, error) {
	product, err := r.fetch(restaurantID, id)
	if err != nil {
		return nil, err
	}
	if result := r.db.Model(product).Update("image_path", path); result.Error != nil {
		return nil, result.Error
	}
	rate, err := r.tenantRate(restaurantID)
	if err != nil {
		return nil, err
	}
	return r.buildView(product, rate)
}

func (r *ProductRepo) fetch(restaurantID uuid.UUID, id uint) (*model.Product, error) {
	var product model.Product
	result := r.db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

func (r *ProductRepo) tenantRate(restaurantID uuid.UUID) (float64, error) {
	var setting model.Setting
	result := r.db.Where("restaurant_id = ?", restaurantID).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 1.0, nil
		}
		return 0, result.Error
	}
	return setting.Rate, nil
}

func (r *ProductRepo) buildView(product *model.Product, rate float64) (*ProductView, error) {
	categoryIDs, ingredientIDs, err := linkIDs(r.db, product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductView{
		ID:             product.ID,
		Name:           product.Name,
		ImagePath:      product.ImagePath,
		PriceCurrency1: product.PriceCurrency1,
		PriceCurrency2: DerivedPrice(product.PriceCurrency1, rate),
		CategoryIDs:    categoryIDs,
		IngredientIDs:  ingredientIDs,
	}, nil
}

func linkIDs(db *gorm.DB, productID uint) ([]uint, []uint, error) {
	categoryIDs := []uint{}
	result := db.Model(&model.ProductCategory{}).
		Where("product_id = ?", productID).
		Order("category_id asc").
		Pluck("category_id", &categoryIDs)
	if result.Error != nil {
		return nil, nil, result.Error
	}

	ingredientIDs := []uint{}
	result = db.Model(&model.ProductIngredient{}).
		Where("product_id = ?", productID).
		Order("ingredient_id asc").
		Pluck("ingredient_id", &ingredientIDs)
	if result.Error != nil {
		return nil, nil, result.Error
	}
	return categoryIDs, ingredientIDs, nil
}

// verifyOwnership rejects association ids that do not belong to the
// restaurant. The mismatch is reported as not found so the caller cannot
// probe another tenant's id space.
func verifyOwnership(tx *gorm.DB, restaurantID uuid.UUID, input ProductInput) error {
	if len(input.CategoryIDs) > 0 {
		var count int64
		result := tx.Model(&model.Category{}).
			Where("id IN ? AND restaurant_id = ?", input.CategoryIDs, restaurantID).
			Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count != int64(len(uniqueIDs(input.CategoryIDs))) {
			return ErrNotFound
		}
	}
	if len(input.IngredientIDs) > 0 {
		var count int64
		result := tx.Model(&model.Ingredient{}).
			Where("id IN ? AND restaurant_id = ?", input.IngredientIDs, restaurantID).
			Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count != int64(len(uniqueIDs(input.IngredientIDs))) {
			return ErrNotFound
		}
	}
	return nil
}

func deleteLinks(tx *gorm.DB, productID uint) error {
	if result := tx.Where("product_id = ?", productID).Delete(&model.ProductCategory{}); result.Error != nil {
		return result.Error
	}
	if result := tx.Where("product_id = ?", productID).Delete(&model.ProductIngredient{}); result.Error != nil {
		return result.Error
	}
	return nil
}

func insertLinks(tx *gorm.DB, productID uint, input ProductInput) error {
	for _, categoryID := range uniqueIDs(input.CategoryIDs) {
		link := model.ProductCategory{ProductID: productID, CategoryID: categoryID}
		if result := tx.Create(&link); result.Error != nil {
			return result.Error
		}
	}
	for _, ingredientID := range uniqueIDs(input.IngredientIDs) {
		link := model.ProductIngredient{ProductID: productID, IngredientID: ingredientID}
		if result := tx.Create(&link); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
