package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-odds/internal/weather"
)

type fakeWarmer struct {
	mu     sync.Mutex
	cached map[string]bool
	fail   map[string]bool
	warmed []string
}

func newFakeWarmer() *fakeWarmer {
	return &fakeWarmer{cached: map[string]bool{}, fail: map[string]bool{}}
}

func (w *fakeWarmer) Cached(coord weather.Coordinate) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cached[coord.Key()]
}

func (w *fakeWarmer) Warm(ctx context.Context, coord weather.Coordinate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a bounded context")
	}
	w.warmed = append(w.warmed, coord.Key())
	if w.fail[coord.Key()] {
		return errors.New("upstream down")
	}
	w.cached[coord.Key()] = true
	return nil
}

func TestRunOnce_SkipsCachedAndCountsSuccesses(t *testing.T) {
	paris := weather.Coordinate{Lat: 48.8566, Lon: 2.3522}
	sydney := weather.Coordinate{Lat: -33.8688, Lon: 151.2093}
	tokyo := weather.Coordinate{Lat: 35.6762, Lon: 139.6503}

	w := newFakeWarmer()
	w.cached[paris.Key()] = true
	w.fail[tokyo.Key()] = true

	s := New([]weather.Coordinate{paris, sydney, tokyo}, time.Minute, time.Second, w)

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.ElementsMatch(t, []string{sydney.Key(), tokyo.Key()}, w.warmed)

	// Only the failed coordinate is retried on the next run.
	w.warmed = nil
	assert.Equal(t, 0, s.RunOnce(context.Background()))
	assert.Equal(t, []string{tokyo.Key()}, w.warmed)
}

func TestStart_NoLocations(t *testing.T) {
	s := New(nil, time.Minute, time.Second, newFakeWarmer())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_RunsImmediately(t *testing.T) {
	coord := weather.Coordinate{Lat: 1, Lon: 1}
	w := newFakeWarmer()

	s := New([]weather.Coordinate{coord}, time.Hour, time.Second, w)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return w.Cached(coord) }, 2*time.Second, 10*time.Millisecond)
}

func TestStart_HonoursSubMinuteInterval(t *testing.T) {
	coord := weather.Coordinate{Lat: 2, Lon: 2}
	w := newFakeWarmer()
	w.fail[coord.Key()] = true // stays uncached so every run warms it again

	s := New([]weather.Coordinate{coord}, time.Second, time.Second, w)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.warmed) >= 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNew_DefaultsInterval(t *testing.T) {
	s := New(nil, 0, 0, newFakeWarmer())
	assert.Equal(t, defaultInterval, s.interval)
	assert.Equal(t, time.Minute, s.timeout)
}
