package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/state"
)

type staticBearer struct {
	header string
}

func (s staticBearer) BearerHeader(ctx context.Context) (string, bool) {
	return s.header, s.header != ""
}

// stubAPI records calls and returns configured results
type stubAPI struct {
	mu    sync.Mutex
	calls []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32

	bundle    domain.StatisticsBundle
	bundleErr error
	zones     []domain.ZoneStatistic
	zonesErr  error
	hourly    []domain.HourlyPattern
	hourlyErr error

	onZones func(ctx context.Context)
}

func (s *stubAPI) record(name string) func() {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()

	n := s.inFlight.Add(1)
	for {
		max := s.maxInFlight.Load()
		if n <= max || s.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}
	return func() { s.inFlight.Add(-1) }
}

func (s *stubAPI) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubAPI) FetchSummaryStatistics(ctx context.Context, authHeader string) (domain.StatisticsBundle, error) {
	defer s.record("summary")()
	return s.bundle, s.bundleErr
}

func (s *stubAPI) FetchZoneStatistics(ctx context.Context, authHeader string) ([]domain.ZoneStatistic, error) {
	defer s.record("zones")()
	if s.onZones != nil {
		s.onZones(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.zones, s.zonesErr
}

func (s *stubAPI) FetchHourlyPatterns(ctx context.Context, authHeader string) ([]domain.HourlyPattern, error) {
	defer s.record("hourly")()
	return s.hourly, s.hourlyErr
}

func stubData() *stubAPI {
	return &stubAPI{
		bundle: domain.StatisticsBundle{
			Summary: domain.StatisticsSummary{TotalAllTime: 900, TotalToday: 32, TotalThisMonth: 120, TotalThisYear: 640},
		},
		zones: []domain.ZoneStatistic{
			{ZoneID: 1, ZoneName: "CVD Baños", TotalDetections: 3, OrganicCount: 1, RecyclableCount: 1, NonRecyclableCount: 1, PercentOfTotal: 9.4},
		},
		hourly: []domain.HourlyPattern{
			{Hour: 8, Count: 5, PercentOfTotal: 15.6, DominantCategory: domain.CategoryRecyclable},
		},
	}
}

func TestStatisticsLoader_NoTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	api := stubData()
	loader := NewStatisticsLoader(api, staticBearer{}, zap.NewNop())
	loader.Load(context.Background())

	if calls := api.Calls(); len(calls) != 0 {
		t.Fatalf("expected zero API calls, got %v", calls)
	}
	for name, msg := range map[string]func() (string, bool){
		"summary": loader.Summary().Get().Message,
		"zones":   loader.Zones().Get().Message,
		"hourly":  loader.Hourly().Get().Message,
	} {
		if got, ok := msg(); !ok || got != "no auth token" {
			t.Errorf("%s message = %q, %v; want no auth token", name, got, ok)
		}
	}
}

func TestStatisticsLoader_AllSucceed(t *testing.T) {
	t.Parallel()

	api := stubData()
	loader := NewStatisticsLoader(api, staticBearer{header: "Bearer tok"}, zap.NewNop())
	loader.Load(context.Background())

	if got, ok := loader.Summary().Get().Data(); !ok || !reflect.DeepEqual(got, api.bundle) {
		t.Errorf("summary = %+v, %v", got, ok)
	}
	if got, ok := loader.Zones().Get().Data(); !ok || !reflect.DeepEqual(got, api.zones) {
		t.Errorf("zones = %+v, %v", got, ok)
	}
	if got, ok := loader.Hourly().Get().Data(); !ok || !reflect.DeepEqual(got, api.hourly) {
		t.Errorf("hourly = %+v, %v", got, ok)
	}

	want := []string{"summary", "zones", "hourly"}
	if calls := api.Calls(); !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if max := api.maxInFlight.Load(); max != 1 {
		t.Errorf("max concurrent calls = %d, want 1", max)
	}
}

func TestStatisticsLoader_FailureIsIsolated(t *testing.T) {
	t.Parallel()

	api := stubData()
	api.zonesErr = &domain.APIError{StatusCode: 502, Path: "/zones", Message: "bad gateway"}
	loader := NewStatisticsLoader(api, staticBearer{header: "Bearer tok"}, zap.NewNop())
	loader.Load(context.Background())

	if !loader.Summary().Get().IsSuccess() {
		t.Errorf("summary should stay Success, got %v", loader.Summary().Get().Kind())
	}
	if msg, ok := loader.Zones().Get().Message(); !ok || msg != "bad gateway" {
		t.Errorf("zones message = %q, %v", msg, ok)
	}
	if !loader.Hourly().Get().IsSuccess() {
		t.Errorf("hourly should still load after zones failed, got %v", loader.Hourly().Get().Kind())
	}
}

func TestStatisticsLoader_PublishesEachSourceAsItResolves(t *testing.T) {
	t.Parallel()

	api := stubData()
	loader := NewStatisticsLoader(api, staticBearer{header: "Bearer tok"}, zap.NewNop())

	var summaryAtZonesCall, hourlyAtZonesCall state.Kind
	api.onZones = func(ctx context.Context) {
		summaryAtZonesCall = loader.Summary().Get().Kind()
		hourlyAtZonesCall = loader.Hourly().Get().Kind()
	}

	var transitions []state.Kind
	unsubscribe := loader.Zones().Subscribe(func(s ZonesState) { transitions = append(transitions, s.Kind()) })
	defer unsubscribe()

	loader.Load(context.Background())

	if summaryAtZonesCall != state.KindSuccess {
		t.Errorf("summary during zones call = %v, want success", summaryAtZonesCall)
	}
	if hourlyAtZonesCall != state.KindLoading {
		t.Errorf("hourly during zones call = %v, want loading", hourlyAtZonesCall)
	}

	// initial Loading, cycle reset to Loading, then Success
	want := []state.Kind{state.KindLoading, state.KindLoading, state.KindSuccess}
	if !reflect.DeepEqual(transitions, want) {
		t.Errorf("zones transitions = %v, want %v", transitions, want)
	}
}

func TestStatisticsLoader_RetryRecovers(t *testing.T) {
	t.Parallel()

	api := stubData()
	api.zonesErr = errors.New("connection reset")
	loader := NewStatisticsLoader(api, staticBearer{header: "Bearer tok"}, zap.NewNop())

	loader.Load(context.Background())
	if !loader.Zones().Get().IsError() {
		t.Fatalf("zones should fail first, got %v", loader.Zones().Get().Kind())
	}

	api.zonesErr = nil
	loader.Retry(context.Background())

	if got, ok := loader.Zones().Get().Data(); !ok || !reflect.DeepEqual(got, api.zones) {
		t.Errorf("zones after retry = %+v, %v", got, ok)
	}
	want := []string{"summary", "zones", "hourly", "summary", "zones", "hourly"}
	if calls := api.Calls(); !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestStatisticsLoader_CancelAbandonsRemainingCalls(t *testing.T) {
	t.Parallel()

	api := stubData()
	entered := make(chan struct{})
	api.onZones = func(ctx context.Context) {
		close(entered)
		<-ctx.Done()
	}
	loader := NewStatisticsLoader(api, staticBearer{header: "Bearer tok"}, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		loader.Load(context.Background())
	}()

	<-entered
	loader.Cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Load did not return after Cancel")
	}

	if !loader.Summary().Get().IsSuccess() {
		t.Error("summary resolved before cancel and should stay Success")
	}
	if msg, _ := loader.Zones().Get().Message(); msg != MessageCancelled {
		t.Errorf("zones message = %q, want %q", msg, MessageCancelled)
	}
	if msg, _ := loader.Hourly().Get().Message(); msg != MessageCancelled {
		t.Errorf("hourly message = %q, want %q", msg, MessageCancelled)
	}

	want := []string{"summary", "zones"}
	if calls := api.Calls(); !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestMockDetectionAPI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	api := NewMockDetectionAPI()

	bundle, err := api.FetchSummaryStatistics(ctx, "Bearer demo")
	if err != nil {
		t.Fatalf("FetchSummaryStatistics() error = %v", err)
	}
	if bundle.Summary.TotalToday != 33 {
		t.Errorf("TotalToday = %d, want 33", bundle.Summary.TotalToday)
	}
	if len(bundle.MonthlyTrend) != 6 {
		t.Errorf("monthly trend entries = %d, want 6", len(bundle.MonthlyTrend))
	}

	zones, _ := api.FetchZoneStatistics(ctx, "Bearer demo")
	if len(zones) != 3 || zones[2].ZoneName != "Edificio A Entrada" || zones[2].TotalDetections != 19 {
		t.Errorf("zones = %+v", zones)
	}
	if zones[2].PercentOfTotal != 57.6 {
		t.Errorf("PercentOfTotal = %v, want 57.6", zones[2].PercentOfTotal)
	}

	for _, h := range bundle.HourlyPatterns {
		if h.Hour < 0 || h.Hour > 23 {
			t.Errorf("hour %d out of range", h.Hour)
		}
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := api.FetchHourlyPatterns(cancelled, "Bearer demo"); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchHourlyPatterns() on cancelled ctx error = %v", err)
	}
}
