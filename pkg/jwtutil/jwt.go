package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/HassanAtaya/digitalmenu/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role values carried in token claims.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// ErrInvalidToken is returned for every verification failure. Expired,
// malformed and badly signed tokens are deliberately indistinguishable to
// the caller.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims for a session token
type Claims struct {
	Role           string     `json:"role"`
	RestaurantID   *uuid.UUID `json:"restaurant_id,omitempty"`
	RestaurantSlug string     `json:"restaurant_slug,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	signingKey []byte
	expiration time.Duration
}

// New creates a JWT utility with the given configuration
func New(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{
		signingKey: []byte(cfg.SigningKey),
		expiration: time.Duration(cfg.ExpirationHours) * time.Hour,
	}
}

// Issue creates a signed token for the given subject and role. Manager
// tokens carry the restaurant id and slug they are bound to; admin tokens
// carry neither.
func (j *JWTUtil) Issue(username, role string, restaurantID *uuid.UUID, restaurantSlug string) (string, error) {
	return j.IssueWithTTL(username, role, restaurantID, restaurantSlug, j.expiration)
}

// IssueWithTTL creates a signed token with an explicit lifetime
func (j *JWTUtil) IssueWithTTL(username, role string, restaurantID *uuid.UUID, restaurantSlug string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:           role,
		RestaurantID:   restaurantID,
		RestaurantSlug: restaurantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// Verify validates and parses a token string. All failure modes collapse
// into ErrInvalidToken.
func (j *JWTUtil) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.signingKey, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

var defaultUtil *JWTUtil

// Initialize sets up the package-level JWT utility
func Initialize(cfg *config.JWTConfig) {
	defaultUtil = New(cfg)
}

// Issue creates a token using the package-level utility
func Issue(username, role string, restaurantID *uuid.UUID, restaurantSlug string) (string, error) {
	if defaultUtil == nil {
		return "", errors.New("jwtutil is not initialized")
	}
	return defaultUtil.Issue(username, role, restaurantID, restaurantSlug)
}

// Verify validates a token using the package-level utility
func Verify(tokenString string) (*Claims, error) {
	if defaultUtil == nil {
		return nil, ErrInvalidToken
	}
	return defaultUtil.Verify(tokenString)
}
