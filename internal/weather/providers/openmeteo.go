package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-odds/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenMeteoBaseURL is the Open-Meteo historical archive endpoint.
const DefaultOpenMeteoBaseURL = "https://archive-api.open-meteo.com/v1/archive"

const openMeteoDaily = "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_mean"

// OpenMeteoProvider implements the weather.Source interface for the Open-Meteo archive.
type OpenMeteoProvider struct {
	name      string
	baseURL   string
	startYear int
	endYear   int
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates an Open-Meteo archive source; an empty opts.BaseURL uses DefaultOpenMeteoBaseURL.
func NewOpenMeteoProvider(client *http.Client, opts Options) *OpenMeteoProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		name:      "openmeteo",
		baseURL:   baseURL,
		startYear: opts.StartYear,
		endYear:   opts.EndYear,
		httpCfg:   newHTTPConfig(client, opts.MaxRetries),
		circuit:   newCircuitBreaker("openmeteo"),
	}
}

// Name identifies the provider in logs, metrics and errors.
func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPayload struct {
	Daily *struct {
		Time    []string   `json:"time"`
		MaxTemp []*float64 `json:"temperature_2m_max"`
		MinTemp []*float64 `json:"temperature_2m_min"`
		Precip  []*float64 `json:"precipitation_sum"`
		Wind    []*float64 `json:"wind_speed_10m_mean"`
	} `json:"daily"`
}

// FetchDaily downloads the daily archive for coord over the configured year
// window. Null entries are left out of the series.
func (p *OpenMeteoProvider) FetchDaily(ctx context.Context, coord weather.Coordinate) (*weather.RawSeries, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
		values.Set("start_date", fmt.Sprintf("%04d-01-01", p.startYear))
		values.Set("end_date", fmt.Sprintf("%04d-12-31", p.endYear))
		values.Set("daily", openMeteoDaily)
		// Keep wind in m/s so every source reports the same raw unit.
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "GMT")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload openMeteoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrMalformedPayload, err)
	}
	if payload.Daily == nil {
		return nil, fmt.Errorf("%w: missing daily block", weather.ErrMalformedPayload)
	}

	daily := payload.Daily
	series := &weather.RawSeries{
		MaxTempC: make(map[string]float64, len(daily.Time)),
		MinTempC: make(map[string]float64, len(daily.Time)),
		PrecipMm: make(map[string]float64, len(daily.Time)),
		WindMS:   make(map[string]float64, len(daily.Time)),
	}

	for i, day := range daily.Time {
		ts, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		key := weather.DateKey(ts)
		setAt(series.MaxTempC, key, daily.MaxTemp, i)
		setAt(series.MinTempC, key, daily.MinTemp, i)
		setAt(series.PrecipMm, key, daily.Precip, i)
		setAt(series.WindMS, key, daily.Wind, i)
	}

	return series, nil
}

// setAt copies values[i] into m when it exists and is not null.
func setAt(m map[string]float64, key string, values []*float64, i int) {
	if i < len(values) && values[i] != nil {
		m[key] = *values[i]
	}
}
