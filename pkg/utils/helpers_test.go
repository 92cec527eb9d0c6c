package utils

import "testing"

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value, min, max, want float64
	}{
		{0.05, 0.1, 1.0, 0.1},
		{0.5, 0.1, 1.0, 0.5},
		{1.2, 0.1, 1.0, 1.0},
		{0.1, 0.1, 1.0, 0.1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	if got := RoundTo(9.375, 1); got != 9.4 {
		t.Errorf("RoundTo(9.375, 1) = %v, want 9.4", got)
	}
	if got := RoundTo(59.3749, 2); got != 59.37 {
		t.Errorf("RoundTo(59.3749, 2) = %v, want 59.37", got)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	if got := Percent(3, 32); got != 9.4 {
		t.Errorf("Percent(3, 32) = %v, want 9.4", got)
	}
	if got := Percent(5, 0); got != 0 {
		t.Errorf("Percent(5, 0) = %v, want 0", got)
	}
}
