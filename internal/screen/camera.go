package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/camera"
)

// CameraView is the rendered camera screen
type CameraView struct {
	Title  string        `json:"title"`
	Status camera.Status `json:"status"`
}

// Camera is the live preview screen
type Camera struct {
	ctrl   *camera.Controller
	logger *zap.Logger

	mu   sync.Mutex
	base context.Context
}

// NewCamera creates the screen over ctrl
func NewCamera(ctrl *camera.Controller, logger *zap.Logger) *Camera {
	return &Camera{ctrl: ctrl, logger: logger}
}

func (c *Camera) Route() Route { return RouteCamera }

// Mount binds the preview. A bind failure is reported through the view status.
func (c *Camera) Mount(ctx context.Context) {
	c.mu.Lock()
	c.base = ctx
	c.mu.Unlock()

	if err := c.ctrl.Bind(ctx); err != nil {
		c.logger.Warn("camera preview unavailable", zap.Error(err))
	}
}

// Dismiss releases the preview
func (c *Camera) Dismiss() {
	c.ctrl.Unbind()
}

// Flip toggles between the back and front lens
func (c *Camera) Flip() error {
	c.mu.Lock()
	ctx := c.base
	c.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	return c.ctrl.Flip(ctx)
}

// Frame returns the latest preview frame
func (c *Camera) Frame() (camera.Frame, bool) {
	return c.ctrl.LatestFrame()
}

// View renders the camera status
func (c *Camera) View() CameraView {
	return CameraView{Title: "Cámara", Status: c.ctrl.Status()}
}
