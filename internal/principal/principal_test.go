package principal

import (
	"testing"

	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managerClaims(restaurantID *uuid.UUID, slug string) *jwtutil.Claims {
	return &jwtutil.Claims{
		Role:             jwtutil.RoleManager,
		RestaurantID:     restaurantID,
		RestaurantSlug:   slug,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "famiglia"},
	}
}

func TestFromClaimsAdmin(t *testing.T) {
	claims := &jwtutil.Claims{
		Role:             jwtutil.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
	}

	p, err := FromClaims(claims)
	require.NoError(t, err)
	admin, ok := p.(Admin)
	require.True(t, ok)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, IsAdmin(p))
}

func TestFromClaimsManager(t *testing.T) {
	restaurantID := uuid.New()

	p, err := FromClaims(managerClaims(&restaurantID, "la-famiglia"))
	require.NoError(t, err)
	manager, ok := p.(Manager)
	require.True(t, ok)
	assert.Equal(t, restaurantID, manager.RestaurantID)
	assert.Equal(t, "la-famiglia", manager.RestaurantSlug)
	assert.False(t, IsAdmin(p))
}

func TestFromClaimsRejectsIncompleteManager(t *testing.T) {
	restaurantID := uuid.New()

	_, err := FromClaims(managerClaims(nil, "la-famiglia"))
	assert.ErrorIs(t, err, jwtutil.ErrInvalidToken)

	_, err = FromClaims(managerClaims(&restaurantID, ""))
	assert.ErrorIs(t, err, jwtutil.ErrInvalidToken)
}

func TestFromClaimsRejectsUnknownRole(t *testing.T) {
	_, err := FromClaims(&jwtutil.Claims{Role: "superuser"})
	assert.ErrorIs(t, err, jwtutil.ErrInvalidToken)
}

func TestAuthorize(t *testing.T) {
	ownID := uuid.New()
	own := &model.Restaurant{ID: ownID}
	other := &model.Restaurant{ID: uuid.New()}

	admin := Admin{Username: "admin"}
	manager := Manager{Username: "famiglia", RestaurantID: ownID, RestaurantSlug: "la-famiglia"}

	assert.NoError(t, Authorize(admin, own))
	assert.NoError(t, Authorize(admin, other))
	assert.NoError(t, Authorize(manager, own))
	assert.ErrorIs(t, Authorize(manager, other), ErrForbidden)
}
