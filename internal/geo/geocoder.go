package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-odds/internal/weather"
)

var (
	// ErrDisabled is returned when no geocoding API key is configured.
	ErrDisabled = errors.New("geocoding is not configured")
	// ErrEmptyPlace is returned for a blank city.
	ErrEmptyPlace = errors.New("city is required")
)

// Geocoder resolves a place name to a coordinate.
type Geocoder interface {
	Lookup(ctx context.Context, city, country string) (weather.Coordinate, error)
}

// GoogleGeocoder resolves places through the Google Geocoding API.
// Results are memoized per place for the process lifetime.
type GoogleGeocoder struct {
	lookup func(geocoder.Address) (geocoder.Location, error)

	mu    sync.RWMutex
	cache map[string]weather.Coordinate
}

// NewGoogleGeocoder configures the geocoder package with apiKey.
// It returns nil when apiKey is empty.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	if apiKey == "" {
		return nil
	}
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		lookup: geocoder.Geocoding,
		cache:  make(map[string]weather.Coordinate),
	}
}

// Lookup returns the coordinate of city, country.
func (g *GoogleGeocoder) Lookup(ctx context.Context, city, country string) (weather.Coordinate, error) {
	if g == nil {
		return weather.Coordinate{}, ErrDisabled
	}
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" {
		return weather.Coordinate{}, ErrEmptyPlace
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinate{}, err
	}

	key := strings.ToLower(city + "|" + country)
	g.mu.RLock()
	coord, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return coord, nil
	}

	loc, err := g.lookup(geocoder.Address{City: city, Country: country})
	if err != nil {
		return weather.Coordinate{}, fmt.Errorf("geocode %q: %w", city, err)
	}

	coord = weather.Coordinate{Lat: loc.Latitude, Lon: loc.Longitude}
	g.mu.Lock()
	g.cache[key] = coord
	g.mu.Unlock()
	return coord, nil
}
