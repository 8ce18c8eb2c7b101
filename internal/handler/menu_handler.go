package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/HassanAtaya/digitalmenu/internal/repository"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PublicMenu serves the composed menu for a restaurant slug. No token is
// required; the only check is the restaurant's active flag, and an inactive
// restaurant answers with the unavailable sentinel rather than an error.
func PublicMenu(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")
	prometheus.RecordMenuView(slug)

	db := database.GetDB()
	restaurant, err := repository.NewRestaurantRepo(db).GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Unknown restaurant slug", zap.String("slug", slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		log.Error("Restaurant lookup failed", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "menu lookup failed"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	menu, err := repository.NewMenuComposer(db).Compose(restaurant)
	if err != nil {
		log.Error("Failed to compose menu", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compose menu"})
	}

	if menu.Unavailable {
		prometheus.MenuUnavailableCounter.Inc()
		log.Info("Menu requested for inactive restaurant", zap.String("slug", slug))
	}
	return c.JSON(http.StatusOK, menu)
}
