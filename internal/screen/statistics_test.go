package screen

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/service"
	"github.com/cabmobile/monitor/internal/state"
)

type staticBearer string

func (b staticBearer) BearerHeader(ctx context.Context) (string, bool) {
	return string(b), b != ""
}

// failingZonesAPI serves demo data except for the zone list
type failingZonesAPI struct {
	*service.MockDetectionAPI
}

func (failingZonesAPI) FetchZoneStatistics(ctx context.Context, authHeader string) ([]domain.ZoneStatistic, error) {
	return nil, &domain.APIError{StatusCode: http.StatusBadGateway, Message: "zones unavailable"}
}

// blockingAPI holds the summary call until its context ends
type blockingAPI struct {
	*service.MockDetectionAPI
	entered chan struct{}
}

func (b blockingAPI) FetchSummaryStatistics(ctx context.Context, authHeader string) (domain.StatisticsBundle, error) {
	close(b.entered)
	<-ctx.Done()
	return domain.StatisticsBundle{}, ctx.Err()
}

func newStatisticsScreen(api domain.StatisticsAPI, bearer staticBearer) *Statistics {
	loader := service.NewStatisticsLoader(api, bearer, zap.NewNop())
	return NewStatistics(loader, zap.NewNop())
}

func TestStatistics_MountLoadsEverySection(t *testing.T) {
	t.Parallel()

	s := newStatisticsScreen(service.NewMockDetectionAPI(), "Bearer demo")
	if v := s.View(); !v.Summary.IsLoading() || !v.Zones.IsLoading() || !v.Chart.IsLoading() {
		t.Fatalf("initial view should be loading: %+v", v)
	}

	s.Mount(context.Background())
	s.Wait()
	defer s.Dismiss()

	v := s.View()
	if v.Title != "Estadísticas" {
		t.Errorf("Title = %q", v.Title)
	}
	card, ok := v.Summary.Data()
	if !ok || card.TotalToday != 33 {
		t.Errorf("Summary = %+v", v.Summary)
	}
	zones, ok := v.Zones.Data()
	if !ok || len(zones) != 3 || zones[0].ZoneName != "CVD Baños" {
		t.Errorf("Zones = %+v", v.Zones)
	}
	chart, ok := v.Chart.Data()
	if !ok || chart.NoData || len(chart.Bars) == 0 {
		t.Errorf("Chart = %+v", v.Chart)
	}
	if v.CanRetry {
		t.Error("CanRetry should be false when zones loaded")
	}
}

func TestStatistics_ZoneFailureIsIsolated(t *testing.T) {
	t.Parallel()

	s := newStatisticsScreen(failingZonesAPI{service.NewMockDetectionAPI()}, "Bearer demo")
	s.Mount(context.Background())
	s.Wait()
	defer s.Dismiss()

	v := s.View()
	if !v.Summary.IsSuccess() || !v.Chart.IsSuccess() {
		t.Errorf("summary and chart should load: %+v", v)
	}
	if msg, ok := v.Zones.Message(); !ok || msg != "zones unavailable" {
		t.Errorf("Zones = %+v", v.Zones)
	}
	if !v.CanRetry {
		t.Error("CanRetry should be true when zones failed")
	}

	var out bytes.Buffer
	RenderStatistics(&out, v)
	if !strings.Contains(out.String(), "error: zones unavailable") {
		t.Errorf("render output missing zone error:\n%s", out.String())
	}
}

func TestStatistics_NoToken(t *testing.T) {
	t.Parallel()

	s := newStatisticsScreen(service.NewMockDetectionAPI(), "")
	s.Mount(context.Background())
	s.Wait()
	defer s.Dismiss()

	v := s.View()
	for name, msg := range map[string]string{
		"summary": messageOf(v.Summary),
		"chart":   messageOf(v.Chart),
		"zones":   messageOf(v.Zones),
	} {
		if msg != "no auth token" {
			t.Errorf("%s message = %q, want %q", name, msg, "no auth token")
		}
	}
}

func TestStatistics_DismissCancelsCycle(t *testing.T) {
	t.Parallel()

	api := blockingAPI{MockDetectionAPI: service.NewMockDetectionAPI(), entered: make(chan struct{})}
	s := newStatisticsScreen(api, "Bearer demo")
	s.Mount(context.Background())

	select {
	case <-api.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("summary call never started")
	}

	s.Dismiss()

	v := s.View()
	for name, msg := range map[string]string{
		"summary": messageOf(v.Summary),
		"chart":   messageOf(v.Chart),
		"zones":   messageOf(v.Zones),
	} {
		if msg != service.MessageCancelled {
			t.Errorf("%s message = %q, want %q", name, msg, service.MessageCancelled)
		}
	}

	if s.Retry() {
		t.Error("Retry should do nothing while dismissed")
	}
}

func TestStatistics_Retry(t *testing.T) {
	t.Parallel()

	s := newStatisticsScreen(service.NewMockDetectionAPI(), "Bearer demo")
	s.Mount(context.Background())
	s.Wait()
	defer s.Dismiss()

	if !s.Retry() {
		t.Fatal("Retry() = false while mounted")
	}
	s.Wait()
	if v := s.View(); !v.Zones.IsSuccess() {
		t.Errorf("Zones after retry = %+v", v.Zones)
	}
}

func messageOf[T any](s state.ViewState[T]) string {
	msg, _ := s.Message()
	return msg
}
