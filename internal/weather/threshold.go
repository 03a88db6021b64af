package weather

// ThresholdKind identifies one of the four comfort conditions.
type ThresholdKind string

const (
	KindHot  ThresholdKind = "hot"
	KindCold ThresholdKind = "cold"
	KindRain ThresholdKind = "rain"
	KindWind ThresholdKind = "wind"
)

// Kinds lists every threshold kind in output order.
var Kinds = []ThresholdKind{KindHot, KindCold, KindRain, KindWind}

// Threshold is either active with a value or inactive. The zero value is
// inactive.
type Threshold struct {
	value  float64
	active bool
}

// Active returns a threshold that is evaluated against v.
func Active(v float64) Threshold {
	return Threshold{value: v, active: true}
}

// Inactive returns a threshold that produces no odds result.
func Inactive() Threshold {
	return Threshold{}
}

// Value returns the threshold value and whether it is active.
func (t Threshold) Value() (float64, bool) {
	return t.value, t.active
}

// IsActive reports whether the threshold is set.
func (t Threshold) IsActive() bool {
	return t.active
}

// Or returns t when active, otherwise fallback.
func (t Threshold) Or(fallback Threshold) Threshold {
	if t.active {
		return t
	}
	return fallback
}

// Thresholds carries one optional threshold per kind.
// Hot and Cold are in °C, Rain in mm, Wind in km/h.
type Thresholds struct {
	Hot  Threshold
	Cold Threshold
	Rain Threshold
	Wind Threshold
}

// Get returns the threshold for kind.
func (t Thresholds) Get(kind ThresholdKind) Threshold {
	switch kind {
	case KindHot:
		return t.Hot
	case KindCold:
		return t.Cold
	case KindRain:
		return t.Rain
	case KindWind:
		return t.Wind
	default:
		return Inactive()
	}
}

// ActiveCount returns how many thresholds are set.
func (t Thresholds) ActiveCount() int {
	n := 0
	for _, k := range Kinds {
		if t.Get(k).IsActive() {
			n++
		}
	}
	return n
}
