package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-odds/internal/weather"
)

func newTestGeocoder(fn func(geocoder.Address) (geocoder.Location, error)) *GoogleGeocoder {
	return &GoogleGeocoder{lookup: fn, cache: make(map[string]weather.Coordinate)}
}

func TestNewGoogleGeocoder_EmptyKeyDisabled(t *testing.T) {
	g := NewGoogleGeocoder("")
	assert.Nil(t, g)

	_, err := g.Lookup(context.Background(), "Paris", "FR")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestLookup_CachesByPlace(t *testing.T) {
	calls := 0
	g := newTestGeocoder(func(a geocoder.Address) (geocoder.Location, error) {
		calls++
		assert.Equal(t, "Paris", a.City)
		assert.Equal(t, "FR", a.Country)
		return geocoder.Location{Latitude: 48.8566, Longitude: 2.3522}, nil
	})

	c1, err := g.Lookup(context.Background(), "Paris", "FR")
	require.NoError(t, err)
	c2, err := g.Lookup(context.Background(), " paris ", "fr")
	require.NoError(t, err)

	assert.Equal(t, weather.Coordinate{Lat: 48.8566, Lon: 2.3522}, c1)
	assert.Equal(t, c1, c2)
	assert.Equal(t, 1, calls)
}

func TestLookup_Errors(t *testing.T) {
	g := newTestGeocoder(func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, errors.New("ZERO_RESULTS")
	})

	_, err := g.Lookup(context.Background(), "  ", "FR")
	assert.ErrorIs(t, err, ErrEmptyPlace)

	_, err = g.Lookup(context.Background(), "Atlantis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}
