package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Percent returns part as a percentage of total, rounded to one decimal.
// A zero total yields 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return RoundTo(float64(part)/float64(total)*100, 1)
}
