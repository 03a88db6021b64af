package httpapi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-odds/internal/geo"
	"github.com/i474232898/weather-odds/internal/weather"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// Deps are the collaborators the HTTP handlers need.
// Geocoder may be nil, in which case lat/lon are required.
type Deps struct {
	Service  *weather.Service
	Geocoder geo.Geocoder
	Clock    clockwork.Clock
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	v1 := app.Group("/api/v1")

	v1.Get("/odds", func(c *fiber.Ctx) error {
		var req oddsQuery
		if err := req.bind(c, deps.Clock); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, err := req.resolveCoordinate(c, deps.Geocoder)
		if err != nil {
			return err
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var preset *weather.Preset
		if req.Preset != "" {
			p, ok := weather.PresetByID(req.Preset)
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown preset %q", req.Preset))
			}
			preset = &p
		}
		thresholds := weather.ResolveThresholds(preset, req.thresholds())

		report, err := deps.Service.Odds(c.UserContext(), coord, req.Date, thresholds)
		if err != nil {
			if weather.IsRemoteFetch(err) {
				return fiber.NewError(fiber.StatusBadGateway, "failed to fetch historical weather data")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute odds")
		}

		resp := fiber.Map{
			"location":     report.Coordinate,
			"date":         report.Date.Format(dateLayout),
			"dayOfYear":    report.DayOfYear,
			"matchedYears": report.MatchedYears,
			"odds":         report.Odds,
		}
		if report.Summary != nil {
			resp["summary"] = report.Summary
		}
		return c.JSON(resp)
	})

	v1.Get("/presets", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"presets": weather.Presets(),
		})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		cleared := deps.Service.CacheSize()
		deps.Service.ClearCache()
		return c.JSON(fiber.Map{
			"cleared": cleared,
		})
	})
}

// oddsQuery holds query parameters for the odds endpoint.
type oddsQuery struct {
	Lat     *float64 `validate:"required,gte=-90,lte=90"`
	Lon     *float64 `validate:"required,gte=-180,lte=180"`
	City    string
	Country string
	Date    time.Time `validate:"required"`
	Preset  string

	Hot  *float64
	Cold *float64
	Rain *float64 `validate:"omitempty,gte=0"`
	Wind *float64 `validate:"omitempty,gte=0"`
}

func (q *oddsQuery) bind(c *fiber.Ctx, clock clockwork.Clock) error {
	var err error
	if q.Lat, err = parseOptionalFloat(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = parseOptionalFloat(c, "lon"); err != nil {
		return err
	}
	q.City = c.Query("city")
	q.Country = c.Query("country")
	q.Preset = c.Query("preset")

	if q.Hot, err = parseOptionalFloat(c, "hot"); err != nil {
		return err
	}
	if q.Cold, err = parseOptionalFloat(c, "cold"); err != nil {
		return err
	}
	if q.Rain, err = parseOptionalFloat(c, "rain"); err != nil {
		return err
	}
	if q.Wind, err = parseOptionalFloat(c, "wind"); err != nil {
		return err
	}

	if s := c.Query("date"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return errors.New("invalid date; use YYYY-MM-DD")
		}
		q.Date = d
	} else {
		now := clock.Now().UTC()
		q.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return nil
}

// resolveCoordinate returns lat/lon when given, otherwise geocodes city/country.
func (q *oddsQuery) resolveCoordinate(c *fiber.Ctx, g geo.Geocoder) (weather.Coordinate, error) {
	if q.Lat != nil || q.Lon != nil || q.City == "" {
		if q.Lat == nil || q.Lon == nil {
			return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
		}
		return weather.Coordinate{Lat: *q.Lat, Lon: *q.Lon}, nil
	}

	if g == nil {
		return weather.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "place lookup is not available; use lat and lon")
	}
	coord, err := g.Lookup(c.UserContext(), q.City, q.Country)
	if err != nil {
		return weather.Coordinate{}, fiber.NewError(fiber.StatusNotFound, "could not resolve requested place")
	}
	q.Lat, q.Lon = &coord.Lat, &coord.Lon
	return coord, nil
}

func (q *oddsQuery) thresholds() weather.Thresholds {
	return weather.Thresholds{
		Hot:  toThreshold(q.Hot),
		Cold: toThreshold(q.Cold),
		Rain: toThreshold(q.Rain),
		Wind: toThreshold(q.Wind),
	}
}

func toThreshold(v *float64) weather.Threshold {
	if v == nil {
		return weather.Inactive()
	}
	return weather.Active(*v)
}

func parseOptionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid %s: %q", key, s)
	}
	return &v, nil
}
