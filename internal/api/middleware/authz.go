package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-admin/internal/api/metrics"
	"github.com/99minutos/identity-admin/internal/core/authz"
)

// Authorize gates a route behind the access policy. It runs after Auth,
// reads the caller's resolved role set from context, and short-circuits with
// 403 before the handler — and therefore before any service call — when the
// policy denies. The denial body is a generic notice only; it never reveals
// whether the addressed resource exists.
func Authorize(policy *authz.Policy, resource string, op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(ContextKeyRoles).([]string)

			decision := policy.Authorize(resource, op, roles)
			label := "allowed"
			if !decision.Allowed {
				label = "denied"
			}
			metrics.AuthzDecisionsTotal.WithLabelValues(resource, string(op), label).Inc()

			if !decision.Allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
