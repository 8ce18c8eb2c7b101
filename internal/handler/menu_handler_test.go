package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMenu(t *testing.T, slug string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/public/menu/"+slug, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	require.NoError(t, PublicMenu(c))
	return rec
}

func TestPublicMenuUnknownSlug(t *testing.T) {
	openHandlerDB(t)

	rec := getMenu(t, "nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicMenuActiveRestaurant(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")

	category, err := repository.NewCategoryRepo(db).Create(restaurant.ID, "Pasta")
	require.NoError(t, err)
	_, err = repository.NewProductRepo(db).Create(restaurant.ID, repository.ProductInput{
		Name:           "Carbonara",
		PriceCurrency1: 12,
		CategoryIDs:    []uint{category.ID},
	})
	require.NoError(t, err)

	rec := getMenu(t, "la-famiglia")
	require.Equal(t, http.StatusOK, rec.Code)

	var menu repository.MenuView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	assert.False(t, menu.Unavailable)
	assert.Equal(t, "La Famiglia", menu.Restaurant)
	require.Len(t, menu.Categories, 1)
	require.Len(t, menu.Categories[0].Products, 1)
	assert.Equal(t, "Carbonara", menu.Categories[0].Products[0].Name)
}

func TestPublicMenuInactiveRestaurant(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")
	_, err := repository.NewRestaurantRepo(db).ToggleActive(restaurant.ID.String())
	require.NoError(t, err)

	rec := getMenu(t, "la-famiglia")
	require.Equal(t, http.StatusOK, rec.Code)

	var menu repository.MenuView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	assert.True(t, menu.Unavailable)
	assert.Empty(t, menu.Categories)
}
