package screen

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// lifecycleLog records Mount and Dismiss calls across screens
type lifecycleLog struct {
	mu     sync.Mutex
	events []string
}

func (l *lifecycleLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *lifecycleLog) take() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

type fakeScreen struct {
	route Route
	log   *lifecycleLog
}

func (s fakeScreen) Route() Route { return s.route }
func (s fakeScreen) Mount(ctx context.Context) { s.log.add("mount " + string(s.route)) }
func (s fakeScreen) Dismiss() { s.log.add("dismiss " + string(s.route)) }

func newTestNavigator(t *testing.T) (*Navigator, *lifecycleLog) {
	t.Helper()
	log := &lifecycleLog{}
	nav, err := NewNavigator(context.Background(), RouteMain, zap.NewNop(),
		fakeScreen{RouteMain, log},
		fakeScreen{RouteCamera, log},
		fakeScreen{RouteStatistics, log},
	)
	if err != nil {
		t.Fatalf("NewNavigator() error = %v", err)
	}
	return nav, log
}

func TestNavigator_StartsOnMain(t *testing.T) {
	t.Parallel()

	nav, log := newTestNavigator(t)
	if got := nav.Current().Get(); got != RouteMain {
		t.Errorf("Current() = %q, want main", got)
	}
	if got := log.take(); !reflect.DeepEqual(got, []string{"mount main"}) {
		t.Errorf("events = %v", got)
	}
}

func TestNavigator_NavigateAndBack(t *testing.T) {
	t.Parallel()

	nav, log := newTestNavigator(t)
	log.take()

	if err := nav.Navigate(RouteStatistics); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if err := nav.Navigate(RouteCamera); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if err := nav.Navigate(RouteCamera); err != nil {
		t.Fatalf("Navigate(current) error = %v", err)
	}
	want := []string{"dismiss main", "mount statistics", "dismiss statistics", "mount camera"}
	if got := log.take(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	if !nav.Back() {
		t.Fatal("Back() = false")
	}
	if got := nav.Current().Get(); got != RouteStatistics {
		t.Errorf("Current() after Back = %q", got)
	}
	if !nav.Back() || nav.Back() {
		t.Error("expected exactly one more Back to succeed")
	}
	want = []string{"dismiss camera", "mount statistics", "dismiss statistics", "mount main"}
	if got := log.take(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestNavigator_UnknownRoute(t *testing.T) {
	t.Parallel()

	nav, _ := newTestNavigator(t)
	if err := nav.Navigate(Route("settings")); !errors.Is(err, ErrUnknownRoute) {
		t.Errorf("Navigate(settings) error = %v", err)
	}
	if _, err := NewNavigator(context.Background(), RouteCamera, zap.NewNop()); !errors.Is(err, ErrUnknownRoute) {
		t.Errorf("NewNavigator without screens error = %v", err)
	}
}

func TestNavigator_Close(t *testing.T) {
	t.Parallel()

	nav, log := newTestNavigator(t)
	log.take()

	nav.Close()
	nav.Close()
	if got := log.take(); !reflect.DeepEqual(got, []string{"dismiss main"}) {
		t.Errorf("events = %v", got)
	}
	if err := nav.Navigate(RouteCamera); err == nil {
		t.Error("Navigate after Close should fail")
	}
	if nav.Back() {
		t.Error("Back after Close should fail")
	}
}
