// Package screen holds the view models of the app's screens and the
// navigator that mounts and dismisses them.
package screen

import (
	"context"
	"errors"
	"fmt"
)

// Route names a navigation destination
type Route string

const (
	RouteMain       Route = "main"
	RouteCamera     Route = "camera"
	RouteStatistics Route = "statistics"
)

// ErrUnknownRoute is returned for a route with no registered screen
var ErrUnknownRoute = errors.New("unknown route")

// ParseRoute validates a route name
func ParseRoute(s string) (Route, error) {
	switch r := Route(s); r {
	case RouteMain, RouteCamera, RouteStatistics:
		return r, nil
	}
	return "", fmt.Errorf("screen: %w: %q", ErrUnknownRoute, s)
}

// Screen is a destination with a visibility lifecycle.
// Mount is called when the screen becomes visible and Dismiss when it leaves;
// work started by Mount must be stopped by Dismiss.
type Screen interface {
	Route() Route
	Mount(ctx context.Context)
	Dismiss()
}
