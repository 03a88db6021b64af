package weather

import (
	"fmt"
	"time"
)

// Coordinate is a point on the globe in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns the canonical cache key for this coordinate: both components
// rounded to 4 decimal places (~11 m).
func (c Coordinate) Key() string {
	return roundedComponent(c.Lat) + "," + roundedComponent(c.Lon)
}

func roundedComponent(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

// RawSeries holds the daily values returned by an upstream source, keyed by
// YYYYMMDD date-keys. Any of the maps may be nil or partially populated.
// A RawSeries must not be modified once it has been cached.
type RawSeries struct {
	MaxTempC map[string]float64 `json:"maxTempC"`
	MinTempC map[string]float64 `json:"minTempC"`
	PrecipMm map[string]float64 `json:"precipMm"`
	// WindMS is the daily mean wind speed in m/s.
	WindMS map[string]float64 `json:"windMs"`
}

// Days returns how many date-keys carry a max temperature.
func (s *RawSeries) Days() int {
	if s == nil {
		return 0
	}
	return len(s.MaxTempC)
}

// DayRecord is one historical year's values for the target day of year.
type DayRecord struct {
	MaxTempC float64
	MinTempC float64
	PrecipMm float64
	WindKmh  float64
}

// ConditionKind tags an odds result for presentation.
type ConditionKind string

const (
	ConditionHot  ConditionKind = "thermometer_sun"
	ConditionCold ConditionKind = "thermometer_snowflake"
	ConditionRain ConditionKind = "cloud_rain"
	ConditionWind ConditionKind = "wind"
)

// OddsResult is the historical exceedance percentage for one active threshold.
type OddsResult struct {
	ID        string        `json:"id"`
	Kind      ThresholdKind `json:"kind"`
	Label     string        `json:"label"`
	Percent   float64       `json:"valuePercent"`
	Note      string        `json:"note"`
	Condition ConditionKind `json:"condition"`
}

// Summary is the mean of each field across the matched years.
type Summary struct {
	AvgHighC    float64 `json:"avgHighC"`
	AvgLowC     float64 `json:"avgLowC"`
	AvgPrecipMm float64 `json:"avgPrecipMm"`
	AvgWindKmh  float64 `json:"avgWindKmh"`
}

// Report is the full answer for one (coordinate, date, thresholds) query.
type Report struct {
	Coordinate   Coordinate   `json:"location"`
	Date         time.Time    `json:"date"`
	DayOfYear    int          `json:"dayOfYear"`
	MatchedYears int          `json:"matchedYears"`
	Odds         []OddsResult `json:"odds"`
	Summary      *Summary     `json:"summary,omitempty"`
}
