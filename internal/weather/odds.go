package weather

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// KmhPerMS converts upstream wind speeds (m/s) to km/h.
const KmhPerMS = 3.6

// oddsNamespace scopes the name-based UUIDs handed out as OddsResult IDs.
var oddsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://power.larc.nasa.gov/odds"))

type rule struct {
	kind      ThresholdKind
	condition ConditionKind
	note      string
	label     func(v float64) string
	exceeds   func(r DayRecord, v float64) bool
}

// rules are evaluated in output order.
var rules = []rule{
	{
		kind:      KindHot,
		condition: ConditionHot,
		note:      "Historical odds of hotter-than-threshold.",
		label:     func(v float64) string { return fmt.Sprintf("Too hot > %d °C", int(v)) },
		exceeds:   func(r DayRecord, v float64) bool { return r.MaxTempC > v },
	},
	{
		kind:      KindCold,
		condition: ConditionCold,
		note:      "Historical odds of colder-than-threshold.",
		label:     func(v float64) string { return fmt.Sprintf("Too cold < %d °C", int(v)) },
		exceeds:   func(r DayRecord, v float64) bool { return r.MinTempC < v },
	},
	{
		kind:      KindRain,
		condition: ConditionRain,
		note:      "Daily precipitation exceedance odds.",
		label:     func(v float64) string { return fmt.Sprintf("Rain ≥ %d mm", int(v)) },
		exceeds:   func(r DayRecord, v float64) bool { return r.PrecipMm >= v },
	},
	{
		kind:      KindWind,
		condition: ConditionWind,
		note:      "Daily wind exceedance odds.",
		label:     func(v float64) string { return fmt.Sprintf("Wind ≥ %d km/h", int(v)) },
		exceeds:   func(r DayRecord, v float64) bool { return r.WindKmh >= v },
	},
}

// MatchDay returns one record per date-key in the max-temperature series that
// falls on the same day of year as target. Only max-temperature keys are
// considered; keys present solely in another series are ignored.
// Records are ordered by date-key.
func MatchDay(series *RawSeries, target time.Time) []DayRecord {
	if series == nil || len(series.MaxTempC) == 0 {
		return nil
	}
	targetDOY := target.YearDay()

	keys := make([]string, 0, len(series.MaxTempC))
	for k := range series.MaxTempC {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var records []DayRecord
	for _, k := range keys {
		doy, ok := DayOfYear(k)
		if !ok || doy != targetDOY {
			continue
		}

		tmax := series.MaxTempC[k]
		tmin, ok := series.MinTempC[k]
		if !ok {
			tmin = tmax
		}
		precip := series.PrecipMm[k]
		windKmh := series.WindMS[k] * KmhPerMS

		records = append(records, DayRecord{
			MaxTempC: tmax,
			MinTempC: tmin,
			PrecipMm: precip,
			WindKmh:  windKmh,
		})
	}
	return records
}

// ComputeOdds evaluates every active threshold against the years matching
// target's day of year and averages those years into a summary.
// It never fails: with no matching years every active threshold yields 0%
// and the summary is nil.
func ComputeOdds(series *RawSeries, target time.Time, thresholds Thresholds) ([]OddsResult, *Summary) {
	records := MatchDay(series, target)
	return Evaluate(records, thresholds), Summarize(records)
}

// Evaluate computes exceedance odds over already matched records.
func Evaluate(records []DayRecord, thresholds Thresholds) []OddsResult {
	n := len(records)
	if n < 1 {
		n = 1
	}

	odds := make([]OddsResult, 0, thresholds.ActiveCount())
	for _, r := range rules {
		v, ok := thresholds.Get(r.kind).Value()
		if !ok {
			continue
		}

		count := 0
		for _, rec := range records {
			if r.exceeds(rec, v) {
				count++
			}
		}

		odds = append(odds, OddsResult{
			ID:        oddsID(r.kind, v),
			Kind:      r.kind,
			Label:     r.label(v),
			Percent:   float64(count) / float64(n) * 100,
			Note:      r.note,
			Condition: r.condition,
		})
	}
	return odds
}

// Summarize averages records field by field. It returns nil for no records.
func Summarize(records []DayRecord) *Summary {
	if len(records) == 0 {
		return nil
	}

	var sumHigh, sumLow, sumPrecip, sumWind float64
	for _, r := range records {
		sumHigh += r.MaxTempC
		sumLow += r.MinTempC
		sumPrecip += r.PrecipMm
		sumWind += r.WindKmh
	}

	n := float64(len(records))
	return &Summary{
		AvgHighC:    sumHigh / n,
		AvgLowC:     sumLow / n,
		AvgPrecipMm: sumPrecip / n,
		AvgWindKmh:  sumWind / n,
	}
}

func oddsID(kind ThresholdKind, v float64) string {
	name := string(kind) + ":" + strconv.FormatFloat(v, 'g', -1, 64)
	return uuid.NewSHA1(oddsNamespace, []byte(name)).String()
}
