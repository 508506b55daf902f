package handler

import (
	"net/http"

	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "techos-service",
	})
}

// MetricsHandler serves the Prometheus scrape endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
