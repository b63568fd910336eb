package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/durgamdileep/product-auth-api/internal/api/metrics"
	"github.com/durgamdileep/product-auth-api/internal/core/domain"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
)

const principalKey = "principal"

// SetPrincipal attaches the authenticated principal to the request context.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// Principal returns the request's authenticated principal, or nil when the
// request is anonymous.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// TokenAuth authenticates from the Authorization: Bearer header. A missing,
// malformed, or unverifiable token lets the request proceed as anonymous;
// downstream authorization decides whether anonymous is enough. No session
// state is consulted and no store lookup happens: the principal comes from
// the claims alone.
func TokenAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			SetPrincipal(c, domain.NewPrincipal(claims.Subject, claims.Roles))
			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

// BasicAuth authenticates credential-mode requests: a session cookie issued
// at login, or Authorization: Basic verified against the store per request.
// A bad Basic header is a hard 401 (via the central error handler); an
// unknown or superseded session cookie falls through to anonymous.
func BasicAuth(auth ports.AuthService, sessions ports.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				p, err := sessions.Resolve(c.Request().Context(), cookie.Value)
				if err == nil {
					SetPrincipal(c, p)
					return next(c)
				}
				if !errors.Is(err, domain.ErrSessionInvalid) {
					return err
				}
			}

			if username, password, ok := c.Request().BasicAuth(); ok {
				p, err := auth.Authenticate(c.Request().Context(), username, password)
				if err != nil {
					return err
				}
				SetPrincipal(c, p)
			}

			return next(c)
		}
	}
}
