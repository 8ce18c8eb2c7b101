package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func TestLoginAdmin(t *testing.T) {
	db := openHandlerDB(t)
	seedAdminUser(t, db)

	rec := postJSON(t, Login, "/api/login", `{"username":"admin","password":"evolusys"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := jwtutil.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwtutil.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
	assert.Nil(t, claims.RestaurantID)
}

func TestLoginManager(t *testing.T) {
	db := openHandlerDB(t)
	restaurant := seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")

	rec := postJSON(t, Login, "/api/login", `{"username":"famiglia","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := jwtutil.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwtutil.RoleManager, claims.Role)
	require.NotNil(t, claims.RestaurantID)
	assert.Equal(t, restaurant.ID, *claims.RestaurantID)
	assert.Equal(t, "la-famiglia", claims.RestaurantSlug)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := openHandlerDB(t)
	seedAdminUser(t, db)
	seedManagedRestaurant(t, db, "La Famiglia", "famiglia", "secret")

	// Unknown username and wrong password answer identically
	for _, body := range []string{
		`{"username":"nobody","password":"whatever"}`,
		`{"username":"admin","password":"wrong"}`,
		`{"username":"famiglia","password":"wrong"}`,
	} {
		rec := postJSON(t, Login, "/api/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"incorrect username or password"}`, rec.Body.String())
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	openHandlerDB(t)

	rec := postJSON(t, Login, "/api/login", `{"username":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
