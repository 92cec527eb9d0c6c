package http

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/screen"
	"github.com/cabmobile/monitor/internal/session"
)

var validate = validator.New()

// HealthFunc reports whether the backing stores are usable
type HealthFunc func(ctx context.Context) error

// Handler contains all HTTP handlers
type Handler struct {
	sessions   *session.Store
	navigator  *screen.Navigator
	home       *screen.Home
	statistics *screen.Statistics
	camera     *screen.Camera
	health     HealthFunc
	logger     *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(
	sessions *session.Store,
	navigator *screen.Navigator,
	home *screen.Home,
	statistics *screen.Statistics,
	camera *screen.Camera,
	health HealthFunc,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sessions:   sessions,
		navigator:  navigator,
		home:       home,
		statistics: statistics,
		camera:     camera,
		health:     health,
		logger:     logger,
	}
}

// LoginRequest is the body of POST /api/v1/session
type LoginRequest struct {
	Token  string `json:"token" validate:"required"`
	UserID string `json:"userId" validate:"omitempty,max=64"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// NavigateRequest is the body of POST /api/v1/navigation
type NavigateRequest struct {
	Route string `json:"route" validate:"required,oneof=main camera statistics"`
}

// SessionView is the public part of the session; the token itself is never returned
type SessionView struct {
	Authenticated  bool       `json:"authenticated"`
	UserID         string     `json:"userId,omitempty"`
	Email          string     `json:"email,omitempty"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenExpired   bool       `json:"tokenExpired"`
}

// NavigationView is the navigation chrome around the current screen
type NavigationView struct {
	Route         screen.Route     `json:"route"`
	NavbarVisible bool             `json:"navbarVisible"`
	Navbar        []screen.NavItem `json:"navbar"`
}

// ScreenResponse wraps a screen view with its navigation chrome
type ScreenResponse[T any] struct {
	Screen     T              `json:"screen"`
	Navigation NavigationView `json:"navigation"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := h.health(c.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "cabmobile-monitor",
		"version": "1.0.0",
	})
}

// GetSession returns the login state
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.sessionView(c.Context()),
	})
}

// Login stores a session issued by the identity provider
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session: "+err.Error())
	}

	if err := h.sessions.SaveSession(c.Context(), req.Token, req.UserID, req.Email); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    h.sessionView(c.Context()),
	})
}

// Logout clears the stored session
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.ClearSession(c.Context()); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.sessionView(c.Context()),
	})
}

// GetNavigation returns the current route and navbar
func (h *Handler) GetNavigation(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.navigation(),
	})
}

// Navigate switches to another screen
func (h *Handler) Navigate(c *fiber.Ctx) error {
	var req NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown route")
	}

	if err := h.navigator.Navigate(screen.Route(req.Route)); err != nil {
		if errors.Is(err, screen.ErrUnknownRoute) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown route")
		}
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.navigation(),
	})
}

// NavigateBack returns to the previous screen
func (h *Handler) NavigateBack(c *fiber.Ctx) error {
	moved := h.navigator.Back()
	return c.JSON(fiber.Map{
		"success": true,
		"moved":   moved,
		"data":    h.navigation(),
	})
}

// GetMainScreen returns the tips carousel
func (h *Handler) GetMainScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ScreenResponse[screen.HomeView]{Screen: h.home.View(), Navigation: h.navigation()},
	})
}

// GetStatisticsScreen returns the statistics sections in their current state
func (h *Handler) GetStatisticsScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ScreenResponse[screen.StatisticsView]{Screen: h.statistics.View(), Navigation: h.navigation()},
	})
}

// RetryStatistics restarts the statistics load cycle
func (h *Handler) RetryStatistics(c *fiber.Ctx) error {
	if !h.statistics.Retry() {
		return fiber.NewError(fiber.StatusConflict, "Statistics screen is not visible")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"data":    ScreenResponse[screen.StatisticsView]{Screen: h.statistics.View(), Navigation: h.navigation()},
	})
}

// GetCameraScreen returns the preview status
func (h *Handler) GetCameraScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ScreenResponse[screen.CameraView]{Screen: h.camera.View(), Navigation: h.navigation()},
	})
}

// GetCameraFrame returns the latest preview image
func (h *Handler) GetCameraFrame(c *fiber.Ctx) error {
	frame, ok := h.camera.Frame()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No frame available")
	}

	c.Set(fiber.HeaderContentType, frame.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("X-Camera-Lens", frame.Lens.String())
	return c.Send(frame.Data)
}

// FlipCamera toggles between the back and front lens
func (h *Handler) FlipCamera(c *fiber.Ctx) error {
	if err := h.camera.Flip(); err != nil {
		h.logger.Warn("camera flip failed", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ScreenResponse[screen.CameraView]{Screen: h.camera.View(), Navigation: h.navigation()},
	})
}

func (h *Handler) navigation() NavigationView {
	route := h.navigator.Current().Get()
	return NavigationView{
		Route:         route,
		NavbarVisible: screen.NavbarVisible(route),
		Navbar:        screen.Navbar(route),
	}
}

func (h *Handler) sessionView(ctx context.Context) SessionView {
	s := h.sessions.Session(ctx)
	view := SessionView{Authenticated: s.IsAuthenticated()}
	if s.UserID != nil {
		view.UserID = *s.UserID
	}
	if s.UserEmail != nil {
		view.Email = *s.UserEmail
	}
	if s.Token != nil {
		if info, err := session.InspectToken(*s.Token); err == nil && !info.ExpiresAt.IsZero() {
			exp := info.ExpiresAt
			view.TokenExpiresAt = &exp
			view.TokenExpired = info.Expired(time.Now())
		}
	}
	return view
}
