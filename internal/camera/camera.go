// Package camera binds a preview source to a screen lifecycle.
package camera

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrPermissionDenied is returned when the camera permission was not granted
	ErrPermissionDenied = errors.New("camera: permission denied")

	// ErrLensUnavailable is returned when the provider has no source for the lens
	ErrLensUnavailable = errors.New("camera: lens unavailable")
)

// Lens selects the physical camera
type Lens int

const (
	LensBack Lens = iota
	LensFront
)

func (l Lens) String() string {
	if l == LensFront {
		return "front"
	}
	return "back"
}

// Flip returns the opposite lens
func (l Lens) Flip() Lens {
	if l == LensBack {
		return LensFront
	}
	return LensBack
}

// Frame is one captured preview image
type Frame struct {
	Data        []byte
	ContentType string
	Lens        Lens
	CapturedAt  time.Time
}

// Provider is the hardware abstraction that produces preview frames.
// Bind starts delivering frames to sink until release is called or ctx ends.
type Provider interface {
	Bind(ctx context.Context, lens Lens, sink func(Frame)) (release func(), err error)
}

// Permission reports whether the user granted camera access
type Permission interface {
	Granted() bool
}

// StaticPermission is a fixed permission answer
type StaticPermission bool

func (p StaticPermission) Granted() bool { return bool(p) }

// Status is a snapshot of the controller for rendering
type Status struct {
	Bound       bool      `json:"bound"`
	Lens        string    `json:"lens"`
	SessionID   string    `json:"sessionId,omitempty"`
	Error       string    `json:"error,omitempty"`
	LastFrameAt time.Time `json:"lastFrameAt,omitempty"`
}

// Controller owns at most one bound preview at a time
type Controller struct {
	provider   Provider
	permission Permission
	logger     *zap.Logger

	mu      sync.Mutex
	lens    Lens
	release func()
	lastErr error

	// frameMu is never held while calling into the provider
	frameMu   sync.Mutex
	sessionID string
	latest    *Frame
}

// NewController creates a controller starting on the back lens
func NewController(provider Provider, permission Permission, logger *zap.Logger) *Controller {
	return &Controller{
		provider:   provider,
		permission: permission,
		logger:     logger,
		lens:       LensBack,
	}
}

// Bind unbinds any previous preview and binds the current lens
func (c *Controller) Bind(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindLocked(ctx)
}

// Flip switches lens and rebinds if a preview was bound
func (c *Controller) Flip(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lens = c.lens.Flip()
	if c.release == nil {
		return nil
	}
	return c.bindLocked(ctx)
}

// Unbind releases the preview resource
func (c *Controller) Unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unbindLocked()
}

// Lens returns the selected lens
func (c *Controller) Lens() Lens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens
}

// LatestFrame returns the most recent frame of the current binding
func (c *Controller) LatestFrame() (Frame, bool) {
	c.frameMu.Lock()
	defer c.frameMu.Unlock()
	if c.latest == nil {
		return Frame{}, false
	}
	return *c.latest, true
}

// Status returns a rendering snapshot
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Bound: c.release != nil,
		Lens:  c.lens.String(),
	}
	if c.lastErr != nil {
		s.Error = c.lastErr.Error()
	}

	c.frameMu.Lock()
	defer c.frameMu.Unlock()
	s.SessionID = c.sessionID
	if c.latest != nil {
		s.LastFrameAt = c.latest.CapturedAt
	}
	return s
}

func (c *Controller) bindLocked(ctx context.Context) error {
	c.unbindLocked()

	if !c.permission.Granted() {
		c.lastErr = ErrPermissionDenied
		return ErrPermissionDenied
	}

	sessionID := uuid.NewString()
	c.setSession(sessionID)

	release, err := c.provider.Bind(ctx, c.lens, func(f Frame) { c.deliver(sessionID, f) })
	if err != nil {
		c.setSession("")
		c.lastErr = err
		c.logger.Warn("camera bind failed", zap.String("lens", c.lens.String()), zap.Error(err))
		return err
	}

	c.release = release
	c.lastErr = nil
	c.logger.Info("camera bound", zap.String("lens", c.lens.String()), zap.String("session_id", sessionID))
	return nil
}

func (c *Controller) unbindLocked() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
	c.logger.Info("camera released")
	c.setSession("")
}

// setSession switches the binding that frames are accepted from and drops the last frame
func (c *Controller) setSession(sessionID string) {
	c.frameMu.Lock()
	defer c.frameMu.Unlock()
	c.sessionID = sessionID
	c.latest = nil
}

// deliver drops frames from a binding that has since been replaced
func (c *Controller) deliver(sessionID string, f Frame) {
	c.frameMu.Lock()
	defer c.frameMu.Unlock()
	if c.sessionID != sessionID {
		return
	}
	c.latest = &f
}
