package handler

import (
	"errors"
	"net/http"
	"strings"

	"techos-service/internal/auth"
	"techos-service/internal/middleware"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler exposes the identity surface: login, session validation and
// logout.
type AuthHandler struct {
	auth *auth.Service
}

// NewAuthHandler wires the identity endpoints.
func NewAuthHandler(authSvc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authSvc}
}

// Login authenticates credentials and returns the principal, a signed token
// and the landing route for the principal's role.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	principal, token, err := h.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("Login rejected", zap.String("email", req.Email))
			prometheus.RecordAuthError("invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Login failed", zap.Error(err))
		prometheus.RecordAuthError("login_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in",
		zap.String("email", principal.Email),
		zap.String("role", string(principal.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token":       token,
		"user":        principal,
		"redirect_to": auth.ResolveLandingRoute(principal),
	})
}

// Session validates the presented token and returns the principal bound to
// it, so the SPA can restore state after a reload.
func (h *AuthHandler) Session(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(http.StatusOK, echo.Map{"valid": false})
	}

	principal, err := h.auth.ValidateSession(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"valid": false})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"valid":       true,
		"user":        principal,
		"redirect_to": auth.ResolveLandingRoute(principal),
	})
}

// Logout revokes the token. It always answers success: clearing the local
// session must not depend on the revocation store being reachable.
func (h *AuthHandler) Logout(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LogoutCounter.Inc()

	if token := bearerToken(c); token != "" {
		h.auth.Logout(c.Request().Context(), token)
		prometheus.DecreaseActiveTokens()
	}

	if p, ok := middleware.PrincipalFromContext(c); ok {
		log.Info("User logged out", zap.String("email", p.Email))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
