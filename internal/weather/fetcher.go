package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/weather-odds/internal/observability"
)

// Fetcher retrieves raw daily series for a coordinate and memoizes them for
// the lifetime of its cache. Once a coordinate is cached the source is never
// contacted again for it. Concurrent misses on the same key share a single
// upstream call.
type Fetcher struct {
	source  Source
	cache   SeriesCache
	metrics *observability.Metrics
	group   singleflight.Group
}

// NewFetcher creates a Fetcher. metrics may be nil.
func NewFetcher(source Source, cache SeriesCache, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		source:  source,
		cache:   cache,
		metrics: metrics,
	}
}

// Fetch returns the cached series for coord or fetches it from the source.
// Any upstream failure is returned as a *RemoteFetchError and is not cached.
func (f *Fetcher) Fetch(ctx context.Context, coord Coordinate) (*RawSeries, error) {
	key := coord.Key()

	if series, ok := f.cache.Get(key); ok {
		f.observeLookup("hit")
		return series, nil
	}
	f.observeLookup("miss")

	// The upstream call is detached from the first caller's cancellation so
	// that a waiter with a longer deadline is not failed by it.
	upstreamCtx := context.WithoutCancel(ctx)
	// led is only written if this caller started the flight, and is read
	// after the result is received from ch.
	led := false
	ch := f.group.DoChan(key, func() (interface{}, error) {
		led = true
		// Another flight may have completed between the lookup and here.
		if series, ok := f.cache.Get(key); ok {
			return series, nil
		}
		return f.fetchUpstream(upstreamCtx, coord)
	})

	select {
	case <-ctx.Done():
		return nil, &RemoteFetchError{Coordinate: coord, Source: f.source.Name(), Err: ctx.Err()}
	case res := <-ch:
		if res.Shared && !led && f.metrics != nil {
			f.metrics.InflightShared.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*RawSeries), nil
	}
}

func (f *Fetcher) fetchUpstream(ctx context.Context, coord Coordinate) (*RawSeries, error) {
	name := f.source.Name()
	start := time.Now()

	log.Printf("DEBUG: fetching historical series for %s from %s", coord.Key(), name)
	series, err := f.source.FetchDaily(ctx, coord)
	if f.metrics != nil {
		f.metrics.FetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	if err == nil && series == nil {
		err = ErrMalformedPayload
	}
	if err != nil {
		f.observeFetch(name, "error")
		log.Printf("ERROR: historical fetch for %s from %s failed: %v", coord.Key(), name, err)

		var rfe *RemoteFetchError
		if errors.As(err, &rfe) {
			return nil, err
		}
		return nil, &RemoteFetchError{Coordinate: coord, Source: name, Err: err}
	}

	f.observeFetch(name, "success")
	f.cache.Put(coord.Key(), series)
	if f.metrics != nil {
		f.metrics.CachedSeries.Set(float64(f.cache.Len()))
	}
	return series, nil
}

// Cached reports whether coord is already in the cache.
func (f *Fetcher) Cached(coord Coordinate) bool {
	_, ok := f.cache.Get(coord.Key())
	return ok
}

// ClearCache drops every cached series.
func (f *Fetcher) ClearCache() {
	f.cache.Clear()
	if f.metrics != nil {
		f.metrics.CachedSeries.Set(0)
	}
}

// CacheSize returns the number of cached coordinates.
func (f *Fetcher) CacheSize() int {
	return f.cache.Len()
}

func (f *Fetcher) observeLookup(result string) {
	if f.metrics != nil {
		f.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (f *Fetcher) observeFetch(source, outcome string) {
	if f.metrics != nil {
		f.metrics.UpstreamFetch.WithLabelValues(source, outcome).Inc()
	}
}
