package screen

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/state"
)

// Home is the main screen: a carousel of tips that advances on a timer
type Home struct {
	tips     []Tip
	interval time.Duration
	logger   *zap.Logger
	page     *state.Value[int]

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// HomeView is the rendered home screen
type HomeView struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
	Tip   Tip    `json:"tip"`
	Dots  []bool `json:"dots"`
}

// NewHome creates the carousel on its first page
func NewHome(tips []Tip, interval time.Duration, logger *zap.Logger) *Home {
	return &Home{
		tips:     tips,
		interval: interval,
		logger:   logger,
		page:     state.NewValue(0),
	}
}

func (h *Home) Route() Route { return RouteMain }

// Page is the observable current page index
func (h *Home) Page() *state.Value[int] { return h.page }

// Mount starts auto-advancing; calling it while mounted is a no-op
func (h *Home) Mount(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil || len(h.tips) == 0 || h.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	h.cancel = cancel
	h.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				page := h.Advance()
				h.logger.Debug("tip carousel advanced", zap.Int("page", page))
			}
		}
	}()
}

// Dismiss stops the carousel timer and waits for it to exit
func (h *Home) Dismiss() {
	h.mu.Lock()
	cancel, done := h.cancel, h.done
	h.cancel, h.done = nil, nil
	h.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Advance moves to the next tip, wrapping from the last to the first
func (h *Home) Advance() int {
	n := len(h.tips)
	if n == 0 {
		return 0
	}
	return h.page.Update(func(p int) int { return (p + 1) % n })
}

// View renders the current page
func (h *Home) View() HomeView {
	page := h.page.Get()
	v := HomeView{
		Title: "Inicio",
		Page:  page,
		Dots:  make([]bool, len(h.tips)),
	}
	if page < len(h.tips) {
		v.Tip = h.tips[page]
		v.Dots[page] = true
	}
	return v
}
