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

// ListProducts retrieves the restaurant's products with association ids and
// derived secondary prices
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("list")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	products, err := repository.NewProductRepo(database.GetDB()).List(restaurant.ID)
	if err != nil {
		log.Error("Failed to retrieve products",
			zap.String("slug", restaurant.Slug),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	log.Info("Products retrieved",
		zap.Int("count", len(products)),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product plus its association links in one transaction
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	var req repository.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product, err := repository.NewProductRepo(database.GetDB()).Create(restaurant.ID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Product references categories or ingredients outside the restaurant",
				zap.String("slug", restaurant.Slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "linked category or ingredient not found"})
		}
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct rewrites a product and atomically replaces its associations
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	var req repository.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	product, err := repository.NewProductRepo(database.GetDB()).Update(restaurant.ID, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price_currency_1", product.PriceCurrency1))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and both association sets
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := repository.NewProductRepo(database.GetDB()).Delete(restaurant.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	log.Info("Product deleted",
		zap.Uint("product_id", id),
		zap.String("slug", restaurant.Slug))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

// UploadProductImage stores a product image and records its URL
func UploadProductImage(c echo.Context) error {
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

	repo := repository.NewProductRepo(database.GetDB())
	if _, err := repo.Get(restaurant.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Product lookup failed", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve product"})
	}

	url, err := media.Default().Save(restaurant.Slug, media.KindProduct, fmt.Sprint(id), fileHeader.Filename, src)
	if err != nil {
		log.Error("Failed to store upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	prometheus.RecordMediaUpload(media.KindProduct)

	product, err := repo.SetImage(restaurant.ID, id, url)
	if err != nil {
		log.Error("Failed to record upload path", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	log.Info("Product image uploaded",
		zap.Uint("product_id", id),
		zap.String("url", url))
	return c.JSON(http.StatusOK, product)
}
