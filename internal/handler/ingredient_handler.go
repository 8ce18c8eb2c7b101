package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HassanAtaya/digitalmenu/internal/media"
	"github.com/HassanAtaya/digitalmenu/internal/repository"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IngredientRequest defines the structure for ingredient creation/update requests
type IngredientRequest struct {
	Name string `json:"name"`
}

// ListIngredients retrieves the restaurant's ingredients
func ListIngredients(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordIngredientOperation("list")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	ingredients, err := repository.NewIngredientRepo(database.GetDB()).List(restaurant.ID)
	if err != nil {
		log.Error("Failed to retrieve ingredients",
			zap.String("slug", restaurant.Slug),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve ingredients"})
	}

	return c.JSON(http.StatusOK, ingredients)
}

// CreateIngredient adds an ingredient to the restaurant
func CreateIngredient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordIngredientOperation("create")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	ingredient, err := repository.NewIngredientRepo(database.GetDB()).Create(restaurant.ID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Warn("Ingredient name already exists for this restaurant",
				zap.String("name", req.Name),
				zap.String("slug", restaurant.Slug))
			return c.JSON(http.StatusConflict, echo.Map{"error": "ingredient with this name already exists"})
		}
		log.Error("Failed to create ingredient", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create ingredient"})
	}

	log.Info("Ingredient created",
		zap.Uint("ingredient_id", ingredient.ID),
		zap.String("name", ingredient.Name),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusCreated, ingredient)
}

// UpdateIngredient renames an ingredient of the restaurant
func UpdateIngredient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordIngredientOperation("update")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	ingredient, err := repository.NewIngredientRepo(database.GetDB()).Update(restaurant.ID, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ingredient not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ingredient with this name already exists"})
		default:
			log.Error("Failed to update ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update ingredient"})
		}
	}

	log.Info("Ingredient updated",
		zap.Uint("ingredient_id", ingredient.ID),
		zap.String("name", ingredient.Name))
	return c.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient removes an ingredient, unlinking it from all products
func DeleteIngredient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordIngredientOperation("delete")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := repository.NewIngredientRepo(database.GetDB()).Delete(restaurant.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ingredient not found"})
		}
		log.Error("Failed to delete ingredient", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete ingredient"})
	}

	log.Info("Ingredient deleted",
		zap.Uint("ingredient_id", id),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, echo.Map{"message": "ingredient deleted successfully"})
}

// UploadIngredientImage stores an ingredient image and records its URL
func UploadIngredientImage(c echo.Context) error {
	log := logger.FromContext(c)

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing upload file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid upload"})
	}
	defer src.Close()

	repo := repository.NewIngredientRepo(database.GetDB())
	if _, err := repo.Get(restaurant.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ingredient not found"})
		}
		log.Error("Ingredient lookup failed", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve ingredient"})
	}

	url, err := media.Default().Save(restaurant.Slug, media.KindIngredient, fmt.Sprint(id), fileHeader.Filename, src)
	if err != nil {
		log.Error("Failed to store upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	prometheus.RecordMediaUpload(media.KindIngredient)

	ingredient, err := repo.SetImage(restaurant.ID, id, url)
	if err != nil {
		log.Error("Failed to record upload path", zap.Uint("ingredient_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update ingredient"})
	}

	log.Info("Ingredient image uploaded",
		zap.Uint("ingredient_id", id),
		zap.String("url", url))
	return c.JSON(http.StatusOK, ingredient)
}
