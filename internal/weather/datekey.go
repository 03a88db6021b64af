package weather

import (
	"strconv"
	"time"
)

// DateKeyLayout is the layout of upstream date-keys.
const DateKeyLayout = "20060102"

// DateKey formats t as a YYYYMMDD date-key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// DayOfYear returns the ordinal day (1-366) of an 8-digit YYYYMMDD date-key.
// Out-of-range month or day values roll over into neighbouring dates, so
// "20210229" counts as March 1st. Keys that are not 8 digits report false.
func DayOfYear(dateKey string) (int, bool) {
	if len(dateKey) != 8 {
		return 0, false
	}
	for i := 0; i < len(dateKey); i++ {
		if dateKey[i] < '0' || dateKey[i] > '9' {
			return 0, false
		}
	}

	year, _ := strconv.Atoi(dateKey[0:4])
	month, _ := strconv.Atoi(dateKey[4:6])
	day, _ := strconv.Atoi(dateKey[6:8])

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).YearDay(), true
}
