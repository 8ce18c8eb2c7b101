package principal

import (
	"errors"

	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"

	"github.com/google/uuid"
)

// ErrForbidden is returned when a principal is not allowed to act on the
// target restaurant.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated actor of a request, reconstructed from a
// verified token on every call. It is a closed union: Admin or Manager.
type Principal interface {
	principal()
}

// Admin is the global administrator. It carries no tenant scope and may act
// on any restaurant.
type Admin struct {
	Username string
}

func (Admin) principal() {}

// Manager is bound to exactly one restaurant at token-issue time.
type Manager struct {
	Username       string
	RestaurantID   uuid.UUID
	RestaurantSlug string
}

func (Manager) principal() {}

// FromClaims builds a principal from verified token claims. Unknown roles
// and manager claims without a restaurant binding are rejected as invalid
// tokens rather than mapped to a weaker principal.
func FromClaims(claims *jwtutil.Claims) (Principal, error) {
	switch claims.Role {
	case jwtutil.RoleAdmin:
		return Admin{Username: claims.Subject}, nil
	case jwtutil.RoleManager:
		if claims.RestaurantID == nil || claims.RestaurantSlug == "" {
			return nil, jwtutil.ErrInvalidToken
		}
		return Manager{
			Username:       claims.Subject,
			RestaurantID:   *claims.RestaurantID,
			RestaurantSlug: claims.RestaurantSlug,
		}, nil
	default:
		return nil, jwtutil.ErrInvalidToken
	}
}

// Authorize decides whether the principal may act on the target restaurant.
// Admins always may. A manager may only act on the restaurant its token was
// issued for, compared by id, not slug.
func Authorize(p Principal, restaurant *model.Restaurant) error {
	switch actor := p.(type) {
	case Admin:
		return nil
	case Manager:
		if actor.RestaurantID == restaurant.ID {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

// IsAdmin reports whether the principal is the global administrator
func IsAdmin(p Principal) bool {
	_, ok := p.(Admin)
	return ok
}
