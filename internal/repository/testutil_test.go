package repository

import (
	"path/filepath"
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a throwaway SQLite database migrated with the full
// schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.Setting{},
		&model.Category{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductCategory{},
		&model.ProductIngredient{},
	))
	return db
}

// createRestaurant inserts a tenant through the repository so the slug and
// default settings row are in place.
func createRestaurant(t *testing.T, db *gorm.DB, name string) *model.Restaurant {
	t.Helper()

	restaurant, err := NewRestaurantRepo(db).Create(RestaurantInput{Name: name})
	require.NoError(t, err)
	return restaurant
}

func setRate(t *testing.T, db *gorm.DB, restaurant *model.Restaurant, rate float64) {
	t.Helper()

	result := db.Model(&model.Setting{}).
		Where("restaurant_id = ?", restaurant.ID).
		Update("rate", rate)
	require.NoError(t, result.Error)
	require.EqualValues(t, 1, result.RowsAffected)
}
