package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/HassanAtaya/digitalmenu/internal/middleware"
	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/internal/principal"
	"github.com/HassanAtaya/digitalmenu/internal/repository"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// scopedRestaurant resolves the :slug path parameter and runs the
// authorization gate against the authenticated principal. On failure it
// writes the response and returns ok=false.
func scopedRestaurant(c echo.Context) (*model.Restaurant, bool) {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	restaurant, err := repository.NewRestaurantRepo(database.GetDB()).GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Unknown restaurant slug", zap.String("slug", slug))
			c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
			return nil, false
		}
		log.Error("Restaurant lookup failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant lookup failed"})
		return nil, false
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		log.Error("Missing principal in context")
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		return nil, false
	}

	if err := principal.Authorize(p, restaurant); err != nil {
		log.Warn("Cross-tenant access attempt",
			zap.String("slug", slug),
			zap.String("restaurant_id", restaurant.ID.String()))
		prometheus.RecordAuthError("cross_tenant_denied")
		c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		return nil, false
	}

	return restaurant, true
}

// pathID parses the numeric :id path parameter. On failure it writes the
// response and returns ok=false.
func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.FromContext(c).Warn("Invalid id parameter", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
