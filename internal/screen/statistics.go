package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/service"
	"github.com/cabmobile/monitor/internal/state"
)

// SummaryCard is the headline card of the statistics screen
type SummaryCard struct {
	Label          string `json:"label"`
	TotalToday     int    `json:"totalToday"`
	TotalThisMonth int    `json:"totalThisMonth"`
	TotalThisYear  int    `json:"totalThisYear"`
	TotalAllTime   int    `json:"totalAllTime"`
}

// ZoneCard shows the per-category counters of one zone
type ZoneCard struct {
	ZoneID        int    `json:"zoneId"`
	ZoneName      string `json:"zoneName"`
	Recyclable    int    `json:"recyclable"`
	Organic       int    `json:"organic"`
	NonRecyclable int    `json:"nonRecyclable"`
}

// StatisticsView is the rendered statistics screen. Each section carries
// its own state so one failed source never blanks the others.
type StatisticsView struct {
	Title    string                       `json:"title"`
	Summary  state.ViewState[SummaryCard] `json:"summary"`
	Chart    state.ViewState[BarChart]    `json:"chart"`
	Zones    state.ViewState[[]ZoneCard]  `json:"zones"`
	CanRetry bool                         `json:"canRetry"`
}

// Statistics is the statistics screen. Mounting starts a load cycle in the
// background; dismissing cancels it.
type Statistics struct {
	loader *service.StatisticsLoader
	logger *zap.Logger

	mu      sync.Mutex
	mounted bool
	base    context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewStatistics creates the screen over loader
func NewStatistics(loader *service.StatisticsLoader, logger *zap.Logger) *Statistics {
	return &Statistics{loader: loader, logger: logger}
}

func (s *Statistics) Route() Route { return RouteStatistics }

// Loader exposes the underlying observable sources
func (s *Statistics) Loader() *service.StatisticsLoader { return s.loader }

// Mount starts a load cycle
func (s *Statistics) Mount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return
	}
	s.mounted = true
	s.base = ctx
	s.startLocked()
}

// Retry restarts the load cycle; it does nothing while the screen is not visible
func (s *Statistics) Retry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return false
	}
	s.logger.Info("statistics retry requested")
	s.startLocked()
	return true
}

// Dismiss cancels the in-flight cycle and waits for it to settle
func (s *Statistics) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	s.mounted = false
	s.stopLocked()
}

// Wait blocks until the current cycle, if any, has finished
func (s *Statistics) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Statistics) startLocked() {
	s.stopLocked()

	ctx, cancel := context.WithCancel(s.base)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go func() {
		defer close(done)
		s.loader.Load(ctx)
	}()
}

func (s *Statistics) stopLocked() {
	if s.done == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// View renders the current state of every section
func (s *Statistics) View() StatisticsView {
	zones := state.Map(s.loader.Zones().Get(), zoneCards)
	return StatisticsView{
		Title:    "Estadísticas",
		Summary:  state.Map(s.loader.Summary().Get(), summaryCard),
		Chart:    state.Map(s.loader.Hourly().Get(), BuildBarChart),
		Zones:    zones,
		CanRetry: zones.IsError(),
	}
}

func summaryCard(b domain.StatisticsBundle) SummaryCard {
	return SummaryCard{
		Label:          "Total de detecciones del día de hoy",
		TotalToday:     b.Summary.TotalToday,
		TotalThisMonth: b.Summary.TotalThisMonth,
		TotalThisYear:  b.Summary.TotalThisYear,
		TotalAllTime:   b.Summary.TotalAllTime,
	}
}

func zoneCards(zones []domain.ZoneStatistic) []ZoneCard {
	cards := make([]ZoneCard, 0, len(zones))
	for _, z := range zones {
		cards = append(cards, ZoneCard{
			ZoneID:        z.ZoneID,
			ZoneName:      z.ZoneName,
			Recyclable:    z.RecyclableCount,
			Organic:       z.OrganicCount,
			NonRecyclable: z.NonRecyclableCount,
		})
	}
	return cards
}
