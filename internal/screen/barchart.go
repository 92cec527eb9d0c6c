package screen

import (
	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/pkg/utils"
)

const (
	minBarFraction = 0.1
	maxBarFraction = 1.0
)

// Bar is one hourly bar with its height as a fraction of the tallest bar
type Bar struct {
	Hour     int     `json:"hour"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// BarChart is the hourly detections chart. NoData is set for an empty series.
type BarChart struct {
	Bars   []Bar `json:"bars"`
	NoData bool  `json:"noData"`
}

// BuildBarChart normalises hourly counts against the maximum count.
// Fractions are clamped to [0.1, 1.0] so every bar stays visible; a series
// whose counts are all zero renders every bar at the minimum.
func BuildBarChart(patterns []domain.HourlyPattern) BarChart {
	if len(patterns) == 0 {
		return BarChart{Bars: []Bar{}, NoData: true}
	}

	peak := 0
	for _, p := range patterns {
		peak = max(peak, p.Count)
	}

	bars := make([]Bar, 0, len(patterns))
	for _, p := range patterns {
		fraction := minBarFraction
		if peak > 0 {
			fraction = utils.Clamp(float64(p.Count)/float64(peak), minBarFraction, maxBarFraction)
		}
		bars = append(bars, Bar{Hour: p.Hour, Count: p.Count, Fraction: fraction})
	}
	return BarChart{Bars: bars}
}
