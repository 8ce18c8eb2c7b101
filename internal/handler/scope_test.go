package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/principal"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopedContext(slug string, p principal.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/"+slug+"/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	if p != nil {
		c.Set("principal", p)
	}
	return c, rec
}

func TestScopedRestaurantAdmin(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")

	c, _ := scopedContext("la-famiglia", principal.Admin{Username: "admin"})
	resolved, ok := scopedRestaurant(c)
	require.True(t, ok)
	assert.Equal(t, restaurant.ID, resolved.ID)
}

func TestScopedRestaurantOwnManager(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")
	manager := principal.Manager{
		Username:       "famiglia",
		RestaurantID:   restaurant.ID,
		RestaurantSlug: restaurant.Slug,
	}

	c, _ := scopedContext("la-famiglia", manager)
	resolved, ok := scopedRestaurant(c)
	require.True(t, ok)
	assert.Equal(t, restaurant.ID, resolved.ID)
}

func TestScopedRestaurantForeignManagerIsForbidden(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")
	seedManagedRestaurant(t, db, "Trattoria", "trattoria", "secret")
	manager := principal.Manager{
		Username:       "famiglia",
		RestaurantID:   restaurant.ID,
		RestaurantSlug: restaurant.Slug,
	}

	c, rec := scopedContext("trattoria", manager)
	_, ok := scopedRestaurant(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScopedRestaurantUnknownSlug(t *testing.T) {
	openHandlerDB(t)

	c, rec := scopedContext("nowhere", principal.Admin{Username: "admin"})
	_, ok := scopedRestaurant(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScopedRestaurantMissingPrincipal(t *testing.T) {
	db := openHandlerDB(t)
	seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")

	c, rec := scopedContext("la-famiglia", nil)
	_, ok := scopedRestaurant(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
