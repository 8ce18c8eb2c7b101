package repository

import (
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingGetCreatesDefaults(t *testing.T) {
	db := openTestDB(t)
	restaurant := createRestaurant(t, db, "La Famiglia")
	settingRepo := NewSettingRepo(db)

	// Remove the row seeded at restaurant creation to exercise get-or-create
	require.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).Delete(&model.Setting{}).Error)

	setting, err := settingRepo.Get(restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", setting.Currency1)
	assert.Equal(t, "EUR", setting.Currency2)
	assert.Equal(t, 1.0, setting.Rate)

	again, err := settingRepo.Get(restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, setting.ID, again.ID)
}

func TestSettingSaveReplacesEditableFields(t *testing.T) {
	db := openTestDB(t)
	restaurant := createRestaurant(t, db, "La Famiglia")
	settingRepo := NewSettingRepo(db)

	barcode := "https://menu.example.com/la-famiglia"
	saved, err := settingRepo.Save(restaurant.ID, SettingInput{
		CompanyName: "La Famiglia SRL",
		Currency1:   "USD",
		Currency2:   "EUR",
		Rate:        0.92,
		BarcodeURL:  &barcode,
	})
	require.NoError(t, err)
	assert.Equal(t, "La Famiglia SRL", saved.CompanyName)
	assert.Equal(t, 0.92, saved.Rate)
	require.NotNil(t, saved.BarcodeURL)
	assert.Equal(t, barcode, *saved.BarcodeURL)

	// A second save without the optional fields clears them
	saved, err = settingRepo.Save(restaurant.ID, SettingInput{
		CompanyName: "La Famiglia SRL",
		Currency1:   "USD",
		Currency2:   "LBP",
		Rate:        89500,
	})
	require.NoError(t, err)
	assert.Equal(t, "LBP", saved.Currency2)
	assert.Nil(t, saved.BarcodeURL)
}

func TestSettingSaveKeepsImagePaths(t *testing.T) {
	db := openTestDB(t)
	restaurant := createRestaurant(t, db, "La Famiglia")
	settingRepo := NewSettingRepo(db)

	_, err := settingRepo.SetLogo(restaurant.ID, "/media/la-famiglia_logo_1.png")
	require.NoError(t, err)
	_, err = settingRepo.SetBarcodeImage(restaurant.ID, "/media/la-famiglia_barcode_1.png")
	require.NoError(t, err)

	saved, err := settingRepo.Save(restaurant.ID, SettingInput{
		CompanyName: "La Famiglia",
		Currency1:   "USD",
		Currency2:   "EUR",
		Rate:        1.0,
	})
	require.NoError(t, err)
	require.NotNil(t, saved.LogoPath)
	assert.Equal(t, "/media/la-famiglia_logo_1.png", *saved.LogoPath)
	require.NotNil(t, saved.BarcodeImagePath)
	assert.Equal(t, "/media/la-famiglia_barcode_1.png", *saved.BarcodeImagePath)
}

func TestSettingsAreIsolatedPerRestaurant(t *testing.T) {
	db := openTestDB(t)
	first := createRestaurant(t, db, "La Famiglia")
	second := createRestaurant(t, db, "Trattoria")
	settingRepo := NewSettingRepo(db)

	_, err := settingRepo.Save(first.ID, SettingInput{
		CompanyName: "La Famiglia",
		Currency1:   "USD",
		Currency2:   "EUR",
		Rate:        0.5,
	})
	require.NoError(t, err)

	other, err := settingRepo.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, other.Rate)
	assert.Empty(t, other.CompanyName)
}
