package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreshold(t *testing.T) {
	var zero Threshold
	assert.False(t, zero.IsActive())

	v, ok := Active(0).Value()
	assert.True(t, ok, "zero is a valid active threshold")
	assert.Equal(t, 0.0, v)

	_, ok = Inactive().Value()
	assert.False(t, ok)

	assert.Equal(t, Active(1), Inactive().Or(Active(1)))
	assert.Equal(t, Active(2), Active(2).Or(Active(1)))
}

func TestThresholds_ActiveCount(t *testing.T) {
	assert.Equal(t, 0, Thresholds{}.ActiveCount())
	assert.Equal(t, 2, Thresholds{Cold: Active(5), Wind: Active(20)}.ActiveCount())
	assert.Equal(t, Inactive(), Thresholds{}.Get(ThresholdKind("fog")))
}

func TestPresets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 3)
	assert.Equal(t, "warm_sunny", presets[0].ID)

	p, ok := PresetByID("mild_pleasant")
	require.True(t, ok)
	assert.Equal(t, Thresholds{Hot: Active(30), Cold: Active(10), Rain: Active(8), Wind: Active(30)}, p.Thresholds())

	_, ok = PresetByID("tropical")
	assert.False(t, ok)
}

func TestPresets_CallersCannotMutateBuiltins(t *testing.T) {
	ps := Presets()
	*ps[0].MaxHotC = 99
	ps[0].MinColdC = nil

	p, ok := PresetByID("warm_sunny")
	require.True(t, ok)
	assert.Equal(t, 35.0, *p.MaxHotC)
	require.NotNil(t, p.MinColdC)

	*p.MaxRainMm = 0
	again, _ := PresetByID("warm_sunny")
	assert.Equal(t, 5.0, *again.MaxRainMm)
	assert.Equal(t, 35.0, *Presets()[0].MaxHotC)
}

func TestResolveThresholds(t *testing.T) {
	p, _ := PresetByID("cool_breezy")

	got := ResolveThresholds(&p, Thresholds{Hot: Active(28)})
	assert.Equal(t, Thresholds{Hot: Active(28), Cold: Active(5), Rain: Active(10), Wind: Active(35)}, got)

	custom := Thresholds{Rain: Active(2)}
	assert.Equal(t, custom, ResolveThresholds(nil, custom))

	partial := Preset{ID: "hot_only", MaxHotC: ptr(33)}
	assert.Equal(t, 1, ResolveThresholds(&partial, Thresholds{}).ActiveCount())
}

func TestCoordinateKey(t *testing.T) {
	assert.Equal(t, "48.8566,2.3522", Coordinate{Lat: 48.85661, Lon: 2.35219}.Key())
	assert.Equal(t, Coordinate{Lat: 10.12344, Lon: 1}.Key(), Coordinate{Lat: 10.12341, Lon: 1}.Key())
	assert.NotEqual(t, Coordinate{Lat: 10.1234, Lon: 1}.Key(), Coordinate{Lat: 10.1236, Lon: 1}.Key())
	assert.Equal(t, "0.0000,0.0000", Coordinate{Lat: -0.00001, Lon: 0.00001}.Key())
	assert.Equal(t, "-33.8688,151.2093", Coordinate{Lat: -33.8688, Lon: 151.2093}.Key())
}
