package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/internal/repository"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/hashutil"
	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Login authenticates either an admin (users table) or a restaurant manager
// (credentials on the restaurant record). Unknown username and wrong
// password are deliberately indistinguishable in the response.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	// Admin accounts first
	var user model.User
	result := database.GetDB().Where("username = ?", req.Username).First(&user)
	if result.Error == nil {
		if !hashutil.Verify(req.Password, user.PasswordHash) {
			log.Warn("Invalid admin password", zap.String("username", req.Username))
			prometheus.RecordAuthError("invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
		}

		token, err := jwtutil.Issue(user.Username, jwtutil.RoleAdmin, nil, "")
		if err != nil {
			log.Error("Failed to generate token", zap.Error(err))
			prometheus.RecordAuthError("token_generation_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
		}

		log.Info("Admin logged in", zap.String("username", user.Username))
		return c.JSON(http.StatusOK, echo.Map{
			"access_token": token,
			"token_type":   "bearer",
		})
	}

	// Restaurant manager accounts
	restaurantRepo := repository.NewRestaurantRepo(database.GetDB())
	restaurant, err := restaurantRepo.FindByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Manager lookup failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		log.Warn("Unknown login username", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
	}

	if restaurant.PasswordHash == nil || !hashutil.Verify(req.Password, *restaurant.PasswordHash) {
		log.Warn("Invalid manager password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
	}

	token, err := jwtutil.Issue(req.Username, jwtutil.RoleManager, &restaurant.ID, restaurant.Slug)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Manager logged in",
		zap.String("username", req.Username),
		zap.String("restaurant_slug", restaurant.Slug))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
