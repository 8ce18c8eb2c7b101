package handler

import (
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

// GetSettings returns the restaurant's settings row
func GetSettings(c echo.Context) error {
	log := logger.FromContext(c)

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	setting, err := repository.NewSettingRepo(database.GetDB()).Get(restaurant.ID)
	if err != nil {
		log.Error("Failed to load settings", zap.String("slug", restaurant.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve settings"})
	}

	return c.JSON(http.StatusOK, setting)
}

// SaveSettings replaces the editable settings fields
func SaveSettings(c echo.Context) error {
	log := logger.FromContext(c)

	restaurant, ok := scopedRestaurant(c)
	if !ok {
		return nil
	}

	var req repository.SettingInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse settings request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	setting, err := repository.NewSettingRepo(database.GetDB()).Save(restaurant.ID, req)
	if err != nil {
		log.Error("Failed to save settings", zap.String("slug", restaurant.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
	}

	log.Info("Settings saved",
		zap.String("slug", restaurant.Slug),
		zap.Float64("rate", setting.Rate))
	return c.JSON(http.StatusOK, setting)
}

// UploadLogo stores the restaurant logo and records its URL. The blob is
// written before the row is touched.
func UploadLogo(c echo.Context) error {
	return uploadSettingImage(c, media.KindLogo)
}

// UploadBarcodeImage stores the menu barcode image and records its URL
func UploadBarcodeImage(c echo.Context) error {
	return uploadSettingImage(c, media.KindBarcode)
}

func uploadSettingImage(c echo.Context, kind string) error {
	log := logger.FromContext(c)

	restaurant, ok := scopedRestaurant(c)
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

	url, err := media.Default().Save(restaurant.Slug, kind, restaurant.ID.String(), fileHeader.Filename, src)
	if err != nil {
		log.Error("Failed to store upload", zap.String("kind", kind), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	prometheus.RecordMediaUpload(kind)

	settingRepo := repository.NewSettingRepo(database.GetDB())
	var setting interface{}
	if kind == media.KindLogo {
		setting, err = settingRepo.SetLogo(restaurant.ID, url)
	} else {
		setting, err = settingRepo.SetBarcodeImage(restaurant.ID, url)
	}
	if err != nil {
		log.Error("Failed to record upload path", zap.String("kind", kind), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
	}

	log.Info("Settings image uploaded",
		zap.String("slug", restaurant.Slug),
		zap.String("kind", kind),
		zap.String("url", url))
	return c.JSON(http.StatusOK, setting)
}
