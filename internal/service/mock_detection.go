package service

import (
	"context"
	"time"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/pkg/utils"
)

// MockDetectionAPI serves demo statistics when no API base URL is configured
type MockDetectionAPI struct {
	now func() time.Time
}

// NewMockDetectionAPI creates a new mock statistics source
func NewMockDetectionAPI() *MockDetectionAPI {
	return &MockDetectionAPI{now: time.Now}
}

// demoZones are the monitored zones of the campus pilot
var demoZones = []struct {
	name          string
	recyclable    int
	organic       int
	nonRecyclable int
}{
	{"CVD Baños", 1, 1, 1},
	{"Edificio D Pasillo", 4, 2, 5},
	{"Edificio A Entrada", 7, 0, 12},
}

// demoHourlyCounts are detections per hour across a school day
var demoHourlyCounts = []struct {
	hour     int
	count    int
	dominant string
}{
	{7, 3, domain.CategoryNonRecyclable},
	{8, 5, domain.CategoryRecyclable},
	{10, 4, domain.CategoryOrganic},
	{12, 7, domain.CategoryNonRecyclable},
	{13, 6, domain.CategoryRecyclable},
	{15, 2, domain.CategoryNonRecyclable},
	{18, 5, domain.CategoryRecyclable},
}

// FetchSummaryStatistics returns mock totals derived from the demo zones
func (m *MockDetectionAPI) FetchSummaryStatistics(ctx context.Context, authHeader string) (domain.StatisticsBundle, error) {
	if err := ctx.Err(); err != nil {
		return domain.StatisticsBundle{}, err
	}

	zones := m.zones()
	var organic, recyclable, nonRecyclable, today int
	for _, z := range zones {
		organic += z.OrganicCount
		recyclable += z.RecyclableCount
		nonRecyclable += z.NonRecyclableCount
		today += z.TotalDetections
	}

	now := m.now()
	trend := make([]domain.MonthlyTrend, 0, 6)
	for i := 5; i >= 0; i-- {
		month := now.AddDate(0, -i, 0)
		trend = append(trend, domain.MonthlyTrend{
			Month: month.Format("2006-01"),
			Count: today * (20 + 3*i),
		})
	}

	return domain.StatisticsBundle{
		Summary: domain.StatisticsSummary{
			TotalAllTime:   today * 300,
			TotalToday:     today,
			TotalThisMonth: today * 20,
			TotalThisYear:  today * 180,
		},
		CategoryBreakdown: []domain.CategoryBreakdown{
			{Category: domain.CategoryOrganic, Count: organic},
			{Category: domain.CategoryRecyclable, Count: recyclable},
			{Category: domain.CategoryNonRecyclable, Count: nonRecyclable},
		},
		Zones:          zones,
		HourlyPatterns: m.hourly(),
		MonthlyTrend:   trend,
	}, nil
}

// FetchZoneStatistics returns the demo zones
func (m *MockDetectionAPI) FetchZoneStatistics(ctx context.Context, authHeader string) ([]domain.ZoneStatistic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.zones(), nil
}

// FetchHourlyPatterns returns the demo school-day pattern
func (m *MockDetectionAPI) FetchHourlyPatterns(ctx context.Context, authHeader string) ([]domain.HourlyPattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.hourly(), nil
}

func (m *MockDetectionAPI) zones() []domain.ZoneStatistic {
	grandTotal := 0
	for _, z := range demoZones {
		grandTotal += z.recyclable + z.organic + z.nonRecyclable
	}

	zones := make([]domain.ZoneStatistic, 0, len(demoZones))
	for i, z := range demoZones {
		total := z.recyclable + z.organic + z.nonRecyclable
		zones = append(zones, domain.ZoneStatistic{
			ZoneID:             i + 1,
			ZoneName:           z.name,
			TotalDetections:    total,
			OrganicCount:       z.organic,
			RecyclableCount:    z.recyclable,
			NonRecyclableCount: z.nonRecyclable,
			PercentOfTotal:     utils.Percent(total, grandTotal),
		})
	}
	return zones
}

func (m *MockDetectionAPI) hourly() []domain.HourlyPattern {
	total := 0
	for _, h := range demoHourlyCounts {
		total += h.count
	}

	patterns := make([]domain.HourlyPattern, 0, len(demoHourlyCounts))
	for _, h := range demoHourlyCounts {
		patterns = append(patterns, domain.HourlyPattern{
			Hour:             h.hour,
			Count:            h.count,
			PercentOfTotal:   utils.Percent(h.count, total),
			DominantCategory: h.dominant,
		})
	}
	return patterns
}
