package domain

// Waste categories reported by the detection devices
const (
	CategoryOrganic       = "organic"
	CategoryRecyclable    = "recyclable"
	CategoryNonRecyclable = "non_recyclable"
)

// StatisticsSummary holds detection totals over fixed periods
type StatisticsSummary struct {
	TotalAllTime   int `json:"totalAllTime"`
	TotalToday     int `json:"totalToday"`
	TotalThisMonth int `json:"totalThisMonth"`
	TotalThisYear  int `json:"totalThisYear"`
}

// CategoryBreakdown is the detection count for one waste category
type CategoryBreakdown struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ZoneStatistic aggregates detections of one monitored zone.
// The category counts are server-computed and are not reconciled against
// TotalDetections on the client.
type ZoneStatistic struct {
	ZoneID             int     `json:"zoneId"`
	ZoneName           string  `json:"zoneName"`
	TotalDetections    int     `json:"totalDetections"`
	OrganicCount       int     `json:"organicCount"`
	RecyclableCount    int     `json:"recyclableCount"`
	NonRecyclableCount int     `json:"nonRecyclableCount"`
	PercentOfTotal     float64 `json:"percentOfTotal"`
}

// HourlyPattern is the detection volume recurring at a given hour of day
type HourlyPattern struct {
	Hour             int     `json:"hour"`
	Count            int     `json:"count"`
	PercentOfTotal   float64 `json:"percentOfTotal"`
	DominantCategory string  `json:"dominantCategory"`
}

// MonthlyTrend is the detection count for one month
type MonthlyTrend struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// StatisticsBundle is the payload of the summary statistics endpoint
type StatisticsBundle struct {
	Summary           StatisticsSummary   `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	Zones             []ZoneStatistic     `json:"zones"`
	HourlyPatterns    []HourlyPattern     `json:"hourlyPatterns"`
	MonthlyTrend      []MonthlyTrend      `json:"monthlyTrend"`
}
