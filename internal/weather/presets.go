package weather

// Preset is a named bundle of comfort thresholds.
type Preset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	MaxHotC     *float64 `json:"maxHotC,omitempty"`
	MinColdC    *float64 `json:"minColdC,omitempty"`
	MaxRainMm   *float64 `json:"maxRainMm,omitempty"`
	MaxWindKmh  *float64 `json:"maxWindKmh,omitempty"`
}

// Thresholds converts the preset into thresholds; nil fields stay inactive.
func (p Preset) Thresholds() Thresholds {
	return Thresholds{
		Hot:  fromPtr(p.MaxHotC),
		Cold: fromPtr(p.MinColdC),
		Rain: fromPtr(p.MaxRainMm),
		Wind: fromPtr(p.MaxWindKmh),
	}
}

func fromPtr(v *float64) Threshold {
	if v == nil {
		return Inactive()
	}
	return Active(*v)
}

func ptr(v float64) *float64 { return &v }

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(*v)
}

// clone returns p with its threshold pointers detached from p's.
func (p Preset) clone() Preset {
	p.MaxHotC = clonePtr(p.MaxHotC)
	p.MinColdC = clonePtr(p.MinColdC)
	p.MaxRainMm = clonePtr(p.MaxRainMm)
	p.MaxWindKmh = clonePtr(p.MaxWindKmh)
	return p
}

var defaultPresets = []Preset{
	{
		ID:          "warm_sunny",
		Name:        "Warm & Sunny",
		Emoji:       "☀️",
		Description: "Prefer heat, avoid rain/wind.",
		MaxHotC:     ptr(35),
		MinColdC:    ptr(15),
		MaxRainMm:   ptr(5),
		MaxWindKmh:  ptr(25),
	},
	{
		ID:          "mild_pleasant",
		Name:        "Mild & Pleasant",
		Emoji:       "🙂",
		Description: "Comfortable temps, little rain.",
		MaxHotC:     ptr(30),
		MinColdC:    ptr(10),
		MaxRainMm:   ptr(8),
		MaxWindKmh:  ptr(30),
	},
	{
		ID:          "cool_breezy",
		Name:        "Cool & Breezy",
		Emoji:       "🍃",
		Description: "Cooler temps, OK with wind.",
		MaxHotC:     ptr(25),
		MinColdC:    ptr(5),
		MaxRainMm:   ptr(10),
		MaxWindKmh:  ptr(35),
	},
}

// Presets returns a copy of the built-in presets.
func Presets() []Preset {
	out := make([]Preset, len(defaultPresets))
	for i, p := range defaultPresets {
		out[i] = p.clone()
	}
	return out
}

// PresetByID looks up a built-in preset.
func PresetByID(id string) (Preset, bool) {
	for _, p := range defaultPresets {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Preset{}, false
}

// ResolveThresholds overlays custom values on a preset: for each kind an
// active custom threshold wins, otherwise the preset's value is used.
// preset may be nil.
func ResolveThresholds(preset *Preset, custom Thresholds) Thresholds {
	if preset == nil {
		return custom
	}
	base := preset.Thresholds()
	return Thresholds{
		Hot:  custom.Hot.Or(base.Hot),
		Cold: custom.Cold.Or(base.Cold),
		Rain: custom.Rain.Or(base.Rain),
		Wind: custom.Wind.Or(base.Wind),
	}
}
