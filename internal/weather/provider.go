package weather

import "context"

// Source abstracts an upstream provider of multi-year daily series
// (e.g. NASA POWER, Open-Meteo archive).
type Source interface {
	Name() string
	FetchDaily(ctx context.Context, coord Coordinate) (*RawSeries, error)
}

// SeriesCache is the contract the in-memory series cache must satisfy.
// Keys are Coordinate.Key values.
type SeriesCache interface {
	Get(key string) (*RawSeries, bool)
	Put(key string, series *RawSeries)
	Delete(key string)
	Clear()
	Len() int
}
