package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/durgamdileep/product-auth-api/internal/api/metrics"
	"github.com/durgamdileep/product-auth-api/internal/core/authz"
	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// Authorize evaluates the route policy table for every request. Exactly one
// decision is made; a denial maps to 401 (anonymous) or 403 (insufficient
// authorities) through the central error handler.
func Authorize(engine *authz.Engine) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			decision := engine.Evaluate(c.Request().Method, c.Request().URL.Path, p)

			if decision.Allowed {
				metrics.AuthzDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(string(decision.Reason)).Inc()
			if decision.Reason == authz.DenyUnauthenticated {
				return domain.ErrUnauthenticated
			}
			return domain.ErrForbidden
		}
	}
}
