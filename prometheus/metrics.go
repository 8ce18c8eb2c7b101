package prometheus

import (
	"time"

	"github.com/HassanAtaya/digitalmenu/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter      prometheus.Counter
	AuthErrorsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Business operation metrics
	RestaurantOperationsCounter prometheus.CounterVec
	CategoryOperationsCounter   prometheus.CounterVec
	IngredientOperationsCounter prometheus.CounterVec
	ProductOperationsCounter    prometheus.CounterVec

	// Public menu metrics
	MenuViewsCounter       prometheus.CounterVec
	MenuUnavailableCounter prometheus.Counter
	MediaUploadsCounter    prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Business operation metrics
	RestaurantOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_restaurant_operations_total",
			Help: "Total number of restaurant operations",
		},
		[]string{"operation"},
	)

	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	IngredientOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ingredient_operations_total",
			Help: "Total number of ingredient operations",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	// Public menu metrics
	MenuViewsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_menu_views_total",
			Help: "Total number of public menu views",
		},
		[]string{"restaurant_slug"},
	)

	MenuUnavailableCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_menu_unavailable_total",
			Help: "Total number of public menu requests for inactive restaurants",
		},
	)

	MediaUploadsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"kind"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordRestaurantOperation increments the counter for restaurant operations
func RecordRestaurantOperation(operation string) {
	RestaurantOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordIngredientOperation increments the counter for ingredient operations
func RecordIngredientOperation(operation string) {
	IngredientOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMenuView increments the counter for public menu views
func RecordMenuView(slug string) {
	MenuViewsCounter.WithLabelValues(slug).Inc()
}

// RecordMediaUpload increments the counter for media uploads
func RecordMediaUpload(kind string) {
	MediaUploadsCounter.WithLabelValues(kind).Inc()
}
