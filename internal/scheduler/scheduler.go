package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-odds/internal/weather"
)

// Warmer is the part of weather.Service the scheduler needs.
type Warmer interface {
	Cached(coord weather.Coordinate) bool
	Warm(ctx context.Context, coord weather.Coordinate) error
}

// Scheduler periodically pre-fetches historical series for configured
// coordinates that are not cached yet.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warmer    Warmer
	locations []weather.Coordinate
	interval  time.Duration
	timeout   time.Duration
}

const defaultInterval = 15 * time.Minute

// New creates a new Scheduler. timeout bounds each individual fetch. A
// non-positive interval falls back to 15 minutes.
func New(locations []weather.Coordinate, interval, timeout time.Duration, warmer Warmer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	if interval <= 0 {
		interval = defaultInterval
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{
		scheduler: s,
		warmer:    warmer,
		locations: locations,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the warm-up job, runs it immediately and starts the
// underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce fetches every uncached location concurrently and returns how many
// were fetched successfully.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log.Println("scheduler: running cache warm-up job")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		warmed int
	)
	for _, loc := range s.locations {
		if s.warmer.Cached(loc) {
			continue
		}

		wg.Add(1)
		go func(loc weather.Coordinate) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := s.warmer.Warm(fetchCtx, loc); err != nil {
				log.Printf("scheduler: warm-up failed for %s: %v", loc.Key(), err)
				return
			}
			mu.Lock()
			warmed++
			mu.Unlock()
		}(loc)
	}
	wg.Wait()

	log.Printf("scheduler: completed cache warm-up job (%d fetched)", warmed)
	return warmed
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
