package jwtutil

import (
	"testing"
	"time"

	"github.com/HassanAtaya/digitalmenu/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUtil() *JWTUtil {
	return New(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func TestIssueAndVerifyAdminToken(t *testing.T) {
	util := newTestUtil()

	token, err := util.Issue("admin", RoleAdmin, nil, "")
	require.NoError(t, err)

	claims, err := util.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Nil(t, claims.RestaurantID)
	assert.Empty(t, claims.RestaurantSlug)
}

func TestIssueAndVerifyManagerToken(t *testing.T) {
	util := newTestUtil()
	restaurantID := uuid.New()

	token, err := util.Issue("famiglia", RoleManager, &restaurantID, "la-famiglia")
	require.NoError(t, err)

	claims, err := util.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, claims.Role)
	require.NotNil(t, claims.RestaurantID)
	assert.Equal(t, restaurantID, *claims.RestaurantID)
	assert.Equal(t, "la-famiglia", claims.RestaurantSlug)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	util := newTestUtil()

	token, err := util.IssueWithTTL("admin", RoleAdmin, nil, "", -time.Minute)
	require.NoError(t, err)

	_, err = util.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	util := newTestUtil()
	other := New(&config.JWTConfig{SigningKey: "another-key", ExpirationHours: 1})

	token, err := other.Issue("admin", RoleAdmin, nil, "")
	require.NoError(t, err)

	_, err = util.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	util := newTestUtil()

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := util.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	util := newTestUtil()

	token, err := util.Issue("admin", RoleAdmin, nil, "")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = util.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
