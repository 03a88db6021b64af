package weather

import (
	"context"
	"log"
	"time"

	"github.com/i474232898/weather-odds/internal/observability"
)

// Service answers odds queries: it fetches (or recalls) the raw series for a
// coordinate and computes the day-of-year odds over it.
type Service struct {
	fetcher *Fetcher
	metrics *observability.Metrics
}

// NewService creates a new Service around a fetcher. metrics may be nil.
func NewService(fetcher *Fetcher, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher: fetcher,
		metrics: metrics,
	}
}

// Odds computes the historical odds for coord on date's day of year.
// The only error returned is a *RemoteFetchError.
func (s *Service) Odds(ctx context.Context, coord Coordinate, date time.Time, thresholds Thresholds) (Report, error) {
	series, err := s.fetcher.Fetch(ctx, coord)
	if err != nil {
		return Report{}, err
	}

	records := MatchDay(series, date)
	report := Report{
		Coordinate:   coord,
		Date:         date,
		DayOfYear:    date.YearDay(),
		MatchedYears: len(records),
		Odds:         Evaluate(records, thresholds),
		Summary:      Summarize(records),
	}

	if s.metrics != nil {
		s.metrics.OddsComputed.Inc()
		s.metrics.MatchedYears.Observe(float64(len(records)))
	}
	if len(records) == 0 {
		log.Printf("INFO: no historical years matched day %d for %s", report.DayOfYear, coord.Key())
	}
	return report, nil
}

// Warm makes sure coord is cached, fetching it if necessary.
func (s *Service) Warm(ctx context.Context, coord Coordinate) error {
	_, err := s.fetcher.Fetch(ctx, coord)
	return err
}

// Cached reports whether coord is already cached.
func (s *Service) Cached(coord Coordinate) bool {
	return s.fetcher.Cached(coord)
}

// ClearCache delegates to the fetcher.
func (s *Service) ClearCache() {
	s.fetcher.ClearCache()
}

// CacheSize delegates to the fetcher.
func (s *Service) CacheSize() int {
	return s.fetcher.CacheSize()
}
