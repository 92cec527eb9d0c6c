package screen

import (
	"testing"

	"github.com/cabmobile/monitor/internal/domain"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		counts    []int
		want      []float64
		wantEmpty bool
	}{
		{name: "empty", counts: nil, wantEmpty: true},
		{name: "proportional", counts: []int{10, 5, 8}, want: []float64{1.0, 0.5, 0.8}},
		{name: "small values clamp to minimum", counts: []int{100, 1, 0}, want: []float64{1.0, 0.1, 0.1}},
		{name: "all zero", counts: []int{0, 0}, want: []float64{0.1, 0.1}},
		{name: "single", counts: []int{3}, want: []float64{1.0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			patterns := make([]domain.HourlyPattern, len(tt.counts))
			for i, c := range tt.counts {
				patterns[i] = domain.HourlyPattern{Hour: 8 + i, Count: c}
			}

			chart := BuildBarChart(patterns)
			if chart.NoData != tt.wantEmpty {
				t.Fatalf("NoData = %v, want %v", chart.NoData, tt.wantEmpty)
			}
			if len(chart.Bars) != len(tt.want) {
				t.Fatalf("len(Bars) = %d, want %d", len(chart.Bars), len(tt.want))
			}
			for i, b := range chart.Bars {
				if diff := b.Fraction - tt.want[i]; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("bar %d fraction = %v, want %v", i, b.Fraction, tt.want[i])
				}
				if b.Hour != 8+i || b.Count != tt.counts[i] {
					t.Errorf("bar %d = %+v", i, b)
				}
			}
		})
	}
}
