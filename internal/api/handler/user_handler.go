package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/durgamdileep/product-auth-api/internal/api/metrics"
	"github.com/durgamdileep/product-auth-api/internal/api/middleware"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
)

// UserHandler handles signup, login, and (credential mode) logout.
// sessions is nil in token mode: login then returns the raw token string as
// the response body and no server-side state is created.
type UserHandler struct {
	auth     ports.AuthService
	sessions ports.SessionRegistry
}

func NewUserHandler(auth ports.AuthService, sessions ports.SessionRegistry) *UserHandler {
	return &UserHandler{auth: auth, sessions: sessions}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Roles    string `json:"roles" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new user.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      plain
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      200   {string}  string
// @Failure      400   {object}  map[string]string
// @Router       /api/User/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, msg)
}

// Login authenticates a user. Token mode returns the raw signed token as the
// response body; credential mode binds a session (invalidating any previous
// one for the same username) and sets the session cookie.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200
// @Failure      401   {object}  map[string]string
// @Router       /api/User/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if h.sessions == nil {
		return h.tokenLogin(c, req)
	}
	return h.sessionLogin(c, req)
}

func (h *UserHandler) tokenLogin(c echo.Context, req loginRequest) error {
	start := time.Now()
	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("token", "failure").Inc()
		metrics.LoginDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.LoginsTotal.WithLabelValues("token", "success").Inc()
	metrics.LoginDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return c.String(http.StatusOK, token)
}

func (h *UserHandler) sessionLogin(c echo.Context, req loginRequest) error {
	start := time.Now()
	principal, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("basic", "failure").Inc()
		metrics.LoginDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		return err
	}

	id, replaced, err := h.sessions.Bind(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	if !replaced {
		metrics.ActiveSessions.Inc()
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.LoginsTotal.WithLabelValues("basic", "success").Inc()
	metrics.LoginDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, map[string]string{"message": "login successful"})
}

// Logout invalidates the current session (credential mode only).
//
// @Summary      Logout
// @Tags         user
// @Success      200
// @Router       /api/User/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Invalidate(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
		metrics.ActiveSessions.Dec()
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}
