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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories retrieves the restaurant's categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("list")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	categories, err := repository.NewCategoryRepo(database.GetDB()).List(restaurant.ID)
	if err != nil {
		log.Error("Failed to retrieve categories",
			zap.String("slug", restaurant.Slug),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	log.Info("Categories retrieved",
		zap.Int("count", len(categories)),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a category to the restaurant
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("create")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	category, err := repository.NewCategoryRepo(database.GetDB()).Create(restaurant.ID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Warn("Category name already exists for this restaurant",
				zap.String("name", req.Name),
				zap.String("slug", restaurant.Slug))
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category of the restaurant
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("update")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	category, err := repository.NewCategoryRepo(database.GetDB()).Update(restaurant.ID, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("Category not found or not owned by restaurant",
				zap.Uint("category_id", id),
				zap.String("slug", restaurant.Slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		default:
			log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
		}
	}

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Refused while products link to it.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("delete")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := repository.NewCategoryRepo(database.GetDB()).Delete(restaurant.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case errors.Is(err, repository.ErrConflict):
			log.Warn("Category has linked products",
				zap.Uint("category_id", id),
				zap.String("slug", restaurant.Slug))
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete category with linked products"})
		default:
			log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
		}
	}

	log.Info("Category deleted",
		zap.Uint("category_id", id),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}

// UploadCategoryImage stores a category image and records its URL
func UploadCategoryImage(c echo.Context) error {
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

	repo := repository.NewCategoryRepo(database.GetDB())
	if _, err := repo.Get(restaurant.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		log.Error("Category lookup failed", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve category"})
	}

	url, err := media.Default().Save(restaurant.Slug, media.KindCategory, fmt.Sprint(id), fileHeader.Filename, src)
	if err != nil {
		log.Error("Failed to store upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	prometheus.RecordMediaUpload(media.KindCategory)

	category, err := repo.SetImage(restaurant.ID, id, url)
	if err != nil {
		log.Error("Failed to record upload path", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}

	log.Info("Category image uploaded",
		zap.Uint("category_id", id),
		zap.String("url", url))
	return c.JSON(http.StatusOK, category)
}
