package screen

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/state"
)

// Navigator hosts the screens and keeps exactly one of them mounted
type Navigator struct {
	ctx     context.Context
	screens map[Route]Screen
	logger  *zap.Logger
	current *state.Value[Route]

	mu      sync.Mutex
	history []Route
	closed  bool
}

// NewNavigator registers screens and mounts start. ctx bounds the work of
// every mounted screen.
func NewNavigator(ctx context.Context, start Route, logger *zap.Logger, screens ...Screen) (*Navigator, error) {
	n := &Navigator{
		ctx:     ctx,
		screens: make(map[Route]Screen, len(screens)),
		logger:  logger,
	}
	for _, s := range screens {
		n.screens[s.Route()] = s
	}

	first, ok := n.screens[start]
	if !ok {
		return nil, fmt.Errorf("screen: %w: %q", ErrUnknownRoute, start)
	}
	n.history = []Route{start}
	n.current = state.NewValue(start)
	first.Mount(ctx)
	return n, nil
}

// Current is the observable current route
func (n *Navigator) Current() *state.Value[Route] { return n.current }

// Navigate dismisses the current screen and mounts route.
// Navigating to the current route is a no-op.
func (n *Navigator) Navigate(route Route) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	next, ok := n.screens[route]
	if !ok {
		return fmt.Errorf("screen: %w: %q", ErrUnknownRoute, route)
	}
	if n.closed {
		return fmt.Errorf("screen: navigator closed")
	}
	from := n.history[len(n.history)-1]
	if from == route {
		return nil
	}

	n.screens[from].Dismiss()
	n.history = append(n.history, route)
	next.Mount(n.ctx)
	n.current.Set(route)
	n.logger.Info("navigated", zap.String("from", string(from)), zap.String("to", string(route)))
	return nil
}

// Back returns to the previous route. It reports false at the start destination.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || len(n.history) < 2 {
		return false
	}
	from := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	to := n.history[len(n.history)-1]

	n.screens[from].Dismiss()
	n.screens[to].Mount(n.ctx)
	n.current.Set(to)
	n.logger.Info("navigated back", zap.String("from", string(from)), zap.String("to", string(to)))
	return true
}

// Close dismisses the current screen; further navigation fails
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.screens[n.history[len(n.history)-1]].Dismiss()
}
