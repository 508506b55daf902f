package middleware

import (
	"net/http"
	"strings"

	"techos-service/internal/auth"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const principalKey = "principal"

// RequireAuth validates the Bearer token (signature, expiry and revocation)
// and stores the resulting principal in the request context. Unauthenticated
// requests are answered 401 with the login route, never a capability check.
func RequireAuth(authSvc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":       "missing authorization token",
					"redirect_to": auth.RouteLogin,
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":       "invalid authorization format, expected Bearer token",
					"redirect_to": auth.RouteLogin,
				})
			}

			principal, err := authSvc.ValidateSession(c.Request().Context(), parts[1])
			if err != nil {
				log.Warn("Invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":       "invalid or expired token",
					"redirect_to": auth.RouteLogin,
				})
			}

			c.Set(principalKey, principal)
			c.Set("user_id", principal.ID)
			c.Set("email", principal.Email)
			c.Set("user_role", string(principal.Role))
			if principal.CompanyID != nil {
				c.Set("company_id", *principal.CompanyID)
			}

			return next(c)
		}
	}
}

// PrincipalFromContext retrieves the authenticated principal set by RequireAuth.
func PrincipalFromContext(c echo.Context) (*auth.Principal, bool) {
	p, ok := c.Get(principalKey).(*auth.Principal)
	return p, ok
}

// RequireRoles gates a route group on exact role membership. The fallback
// route is a parameter of the call site, not a global policy: authenticated
// users with the wrong role are told where to go instead of seeing a raw
// permission error.
func RequireRoles(fallback string, roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			principal, ok := PrincipalFromContext(c)
			if !ok {
				prometheus.RecordAuthError("missing_principal")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":       "authentication required",
					"redirect_to": auth.RouteLogin,
				})
			}

			if !auth.Authorize(principal, roles...) {
				log.Warn("Role not allowed on route",
					zap.String("role", string(principal.Role)),
					zap.String("path", c.Path()))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":       "insufficient permissions",
					"redirect_to": fallback,
				})
			}

			return next(c)
		}
	}
}

// RequireTenantContext ensures the principal is scoped to a company. Super
// admin tokens carry no company and cannot operate on tenant data directly.
func RequireTenantContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.CompanyID == nil {
			prometheus.RecordAuthError("missing_tenant_context")
			return c.JSON(http.StatusForbidden, echo.Map{
				"error":       "company context required",
				"redirect_to": auth.ResolveLandingRoute(principal),
			})
		}
		return next(c)
	}
}

// CompanyIDFromContext returns the principal's company scope, zero when absent.
func CompanyIDFromContext(c echo.Context) uint {
	if p, ok := PrincipalFromContext(c); ok && p.CompanyID != nil {
		return *p.CompanyID
	}
	return 0
}
