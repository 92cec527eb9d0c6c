package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/state"
)

// MessageCancelled is shown for sources whose call was abandoned on dismiss
const MessageCancelled = "load cancelled"

// BearerSource yields the Authorization header for API calls
type BearerSource interface {
	BearerHeader(ctx context.Context) (string, bool)
}

type (
	SummaryState = state.ViewState[domain.StatisticsBundle]
	ZonesState   = state.ViewState[[]domain.ZoneStatistic]
	HourlyState  = state.ViewState[[]domain.HourlyPattern]
)

// StatisticsLoader runs the statistics load cycle and publishes one
// ViewState per data source
type StatisticsLoader struct {
	api    StatisticsAPI
	tokens BearerSource
	logger *zap.Logger

	summary *state.Value[SummaryState]
	zones   *state.Value[ZonesState]
	hourly  *state.Value[HourlyState]

	cycle    sync.Mutex // held for the duration of one cycle
	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// NewStatisticsLoader creates a loader with every source Loading
func NewStatisticsLoader(api StatisticsAPI, tokens BearerSource, logger *zap.Logger) *StatisticsLoader {
	return &StatisticsLoader{
		api:     api,
		tokens:  tokens,
		logger:  logger,
		summary: state.NewValue(state.Loading[domain.StatisticsBundle]()),
		zones:   state.NewValue(state.Loading[[]domain.ZoneStatistic]()),
		hourly:  state.NewValue(state.Loading[[]domain.HourlyPattern]()),
	}
}

func (l *StatisticsLoader) Summary() *state.Value[SummaryState] { return l.summary }
func (l *StatisticsLoader) Zones() *state.Value[ZonesState]     { return l.zones }
func (l *StatisticsLoader) Hourly() *state.Value[HourlyState]   { return l.hourly }

// Load runs one full cycle and returns once every source is Success or Error.
// A cycle already in flight is cancelled and waited for first.
func (l *StatisticsLoader) Load(ctx context.Context) {
	l.Cancel()

	l.cycle.Lock()
	defer l.cycle.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	l.setCancel(cancel)
	defer func() {
		cancel()
		l.setCancel(nil)
	}()

	l.run(ctx)
}

// Retry re-issues the full three-call sequence
func (l *StatisticsLoader) Retry(ctx context.Context) {
	l.Load(ctx)
}

// Cancel abandons the in-flight cycle, if any
func (l *StatisticsLoader) Cancel() {
	l.cancelMu.Lock()
	defer l.cancelMu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *StatisticsLoader) setCancel(cancel context.CancelFunc) {
	l.cancelMu.Lock()
	defer l.cancelMu.Unlock()
	l.cancel = cancel
}

func (l *StatisticsLoader) run(ctx context.Context) {
	l.summary.Set(state.Loading[domain.StatisticsBundle]())
	l.zones.Set(state.Loading[[]domain.ZoneStatistic]())
	l.hourly.Set(state.Loading[[]domain.HourlyPattern]())

	header, ok := l.tokens.BearerHeader(ctx)
	if !ok {
		msg := domain.ErrorMessage(domain.ErrMissingAuthToken)
		l.summary.Set(state.Failure[domain.StatisticsBundle](msg))
		l.zones.Set(state.Failure[[]domain.ZoneStatistic](msg))
		l.hourly.Set(state.Failure[[]domain.HourlyPattern](msg))
		l.logger.Warn("statistics load skipped: no auth token")
		return
	}

	// Sequential on purpose: each source publishes as soon as its call resolves.
	fetchInto(ctx, l.logger, "summary", l.summary, header, l.api.FetchSummaryStatistics)
	fetchInto(ctx, l.logger, "zones", l.zones, header, l.api.FetchZoneStatistics)
	fetchInto(ctx, l.logger, "hourly", l.hourly, header, l.api.FetchHourlyPatterns)
}

// fetchInto issues one call and publishes its outcome to target.
// A failure only affects target.
func fetchInto[T any](
	ctx context.Context,
	logger *zap.Logger,
	source string,
	target *state.Value[state.ViewState[T]],
	header string,
	fetch func(context.Context, string) (T, error),
) {
	if ctx.Err() != nil {
		target.Set(state.Failure[T](MessageCancelled))
		return
	}

	data, err := fetch(ctx, header)
	if err != nil {
		if ctx.Err() != nil {
			target.Set(state.Failure[T](MessageCancelled))
			return
		}
		logger.Warn("statistics source failed", zap.String("source", source), zap.Error(err))
		target.Set(state.Failure[T](domain.ErrorMessage(err)))
		return
	}

	target.Set(state.Success(data))
}
