package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/internal/repository"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RestaurantDetail is the admin-facing read shape of a restaurant: the
// tenant record joined with its settings row and manager username. An
// explicit struct, so the response shape is fixed rather than assembled
// ad hoc.
type RestaurantDetail struct {
	Restaurant      model.Restaurant `json:"restaurant"`
	Setting         *model.Setting   `json:"setting,omitempty"`
	ManagerUsername *string          `json:"manager_username,omitempty"`
}

// ListRestaurants returns all restaurants, admin only
func ListRestaurants(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	restaurants, err := repository.NewRestaurantRepo(database.GetDB()).List()
	if err != nil {
		log.Error("Failed to list restaurants", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve restaurants"})
	}

	log.Info("Restaurants retrieved", zap.Int("count", len(restaurants)))
	return c.JSON(http.StatusOK, restaurants)
}

// CreateRestaurant creates a tenant with its default settings row
func CreateRestaurant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("create")

	var req repository.RestaurantInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse restaurant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	restaurant, err := repository.NewRestaurantRepo(database.GetDB()).Create(req)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Warn("Restaurant name or username already taken", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant name or username already in use"})
		}
		log.Error("Failed to create restaurant", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant creation failed"})
	}

	log.Info("Restaurant created",
		zap.String("name", restaurant.Name),
		zap.String("slug", restaurant.Slug),
		zap.String("id", restaurant.ID.String()))
	return c.JSON(http.StatusCreated, restaurant)
}

// GetRestaurant returns one restaurant, addressed by id or slug
func GetRestaurant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("get")

	db := database.GetDB()
	restaurant, err := repository.NewRestaurantRepo(db).GetByIDOrSlug(c.Param("token"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		log.Error("Restaurant lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant lookup failed"})
	}

	setting, err := repository.NewSettingRepo(db).Get(restaurant.ID)
	if err != nil {
		log.Error("Settings lookup failed", zap.String("slug", restaurant.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settings lookup failed"})
	}

	return c.JSON(http.StatusOK, RestaurantDetail{
		Restaurant:      *restaurant,
		Setting:         setting,
		ManagerUsername: restaurant.Username,
	})
}

// UpdateRestaurant changes the editable tenant fields. The slug never
// changes, even on rename.
func UpdateRestaurant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("update")

	var req repository.RestaurantInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse restaurant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	restaurant, err := repository.NewRestaurantRepo(database.GetDB()).Update(c.Param("token"), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case errors.Is(err, repository.ErrConflict):
			log.Warn("Restaurant name or username already taken")
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant name or username already in use"})
		default:
			log.Error("Failed to update restaurant", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant update failed"})
		}
	}

	log.Info("Restaurant updated",
		zap.String("name", restaurant.Name),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant removes a tenant. Refused while scoped resources exist.
func DeleteRestaurant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := repository.NewRestaurantRepo(database.GetDB()).Delete(c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case errors.Is(err, repository.ErrConflict):
			log.Warn("Restaurant still owns menu data", zap.String("token", c.Param("token")))
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete restaurant with existing menu data"})
		default:
			log.Error("Failed to delete restaurant", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant deletion failed"})
		}
	}

	log.Info("Restaurant deleted", zap.String("token", c.Param("token")))
	return c.JSON(http.StatusOK, echo.Map{"message": "restaurant deleted successfully"})
}

// ToggleRestaurantActive flips the public availability of the menu
func ToggleRestaurantActive(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRestaurantOperation("toggle_active")

	restaurant, err := repository.NewRestaurantRepo(database.GetDB()).ToggleActive(c.Param("token"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		log.Error("Failed to toggle restaurant", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restaurant update failed"})
	}

	log.Info("Restaurant active flag toggled",
		zap.String("slug", restaurant.Slug),
		zap.Bool("is_active", restaurant.IsActive))
	return c.JSON(http.StatusOK, restaurant)
}
