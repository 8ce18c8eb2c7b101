package repository

import (
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantGeneratesUniqueSlugs(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)

	first, err := repo.Create(RestaurantInput{Name: "Cafe"})
	require.NoError(t, err)
	assert.Equal(t, "cafe", first.Slug)

	// Same display name is a conflict, so vary it but keep the slug base
	second, err := repo.Create(RestaurantInput{Name: "CAFE"})
	require.NoError(t, err)
	assert.Equal(t, "cafe-2", second.Slug)

	third, err := repo.Create(RestaurantInput{Name: "Cafe "})
	require.NoError(t, err)
	assert.Equal(t, "cafe-3", third.Slug)
}

func TestCreateRestaurantNameConflict(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)

	_, err := repo.Create(RestaurantInput{Name: "Cafe"})
	require.NoError(t, err)

	_, err = repo.Create(RestaurantInput{Name: "Cafe"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateRestaurantSeedsSettings(t *testing.T) {
	db := openTestDB(t)
	restaurant := createRestaurant(t, db, "La Famiglia")

	var setting model.Setting
	require.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&setting).Error)
	assert.Equal(t, "USD", setting.Currency1)
	assert.Equal(t, "EUR", setting.Currency2)
	assert.Equal(t, 1.0, setting.Rate)
}

func TestRenameKeepsSlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	restaurant := createRestaurant(t, db, "La Famiglia")

	updated, err := repo.Update(restaurant.Slug, RestaurantInput{Name: "La Nuova Famiglia"})
	require.NoError(t, err)
	assert.Equal(t, "La Nuova Famiglia", updated.Name)
	assert.Equal(t, "la-famiglia", updated.Slug)
}

func TestGetByIDOrSlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	restaurant := createRestaurant(t, db, "La Famiglia")

	bySlug, err := repo.GetByIDOrSlug("la-famiglia")
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, bySlug.ID)

	byID, err := repo.GetByIDOrSlug(restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, byID.ID)

	_, err = repo.GetByIDOrSlug("no-such-restaurant")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerCredentials(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)

	username := "mario"
	password := "secret0"
	restaurant, err := repo.Create(RestaurantInput{
		Name:     "La Famiglia",
		Username: &username,
		Password: &password,
	})
	require.NoError(t, err)
	require.NotNil(t, restaurant.Username)
	require.NotNil(t, restaurant.PasswordHash)
	assert.NotEqual(t, password, *restaurant.PasswordHash)

	found, err := repo.FindByUsername("mario")
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, found.ID)

	// Manager usernames are globally unique across tenants
	_, err = repo.Create(RestaurantInput{
		Name:     "Another Place",
		Username: &username,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteRestaurantBlockedByOwnedData(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	restaurant := createRestaurant(t, db, "La Famiglia")

	_, err := NewCategoryRepo(db).Create(restaurant.ID, "Pasta")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(restaurant.Slug), ErrConflict)

	categories, err := NewCategoryRepo(db).List(restaurant.ID)
	require.NoError(t, err)
	require.NoError(t, NewCategoryRepo(db).Delete(restaurant.ID, categories[0].ID))

	require.NoError(t, repo.Delete(restaurant.Slug))
	_, err = repo.GetBySlug(restaurant.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	// Settings row goes with the tenant
	var count int64
	require.NoError(t, db.Model(&model.Setting{}).Where("restaurant_id = ?", restaurant.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	restaurant := createRestaurant(t, db, "La Famiglia")
	require.True(t, restaurant.IsActive)

	toggled, err := repo.ToggleActive(restaurant.Slug)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = repo.ToggleActive(restaurant.Slug)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}
