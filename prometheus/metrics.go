package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "techos_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Logout counter
	LogoutCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "techos_logout_total",
			Help: "Total number of logouts",
		},
	)

	// Authentication error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techos_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_credentials", "invalid_token", "forbidden" etc.
	)

	// Entity operation counter by collection and operation
	EntityOpCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techos_entity_operations_total",
			Help: "Total number of entity store operations",
		},
		[]string{"entity", "operation"}, // entity: "client", "product"...; operation: "create", "update"...
	)

	// Order operation counter
	OrderOpCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techos_order_operations_total",
			Help: "Total number of service order operations",
		},
		[]string{"operation"},
	)

	// Order validation failure counter
	OrderValidationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "techos_order_validation_failures_total",
			Help: "Total number of rejected service order submissions",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techos_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "techos_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "techos_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "techos_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "techos_info",
			Help: "Information about the service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(LogoutCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(EntityOpCounter)
	prometheus.MustRegister(OrderOpCounter)
	prometheus.MustRegister(OrderValidationCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordEntityOp records an entity store operation
func RecordEntityOp(entity, operation string) {
	EntityOpCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordOrderOp records a service order operation
func RecordOrderOp(operation string) {
	OrderOpCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}
