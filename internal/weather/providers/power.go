package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/weather-odds/internal/weather"
	"github.com/sony/gobreaker"
)

const (
	// DefaultPowerBaseURL is the NASA POWER daily point endpoint.
	DefaultPowerBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	powerParameters = "T2M_MAX,T2M_MIN,PRECTOTCORR,WS10M"
	powerCommunity  = "RE"
	powerFormat     = "JSON"
)

// PowerProvider implements the weather.Source interface for NASA POWER.
type PowerProvider struct {
	name      string
	baseURL   string
	startYear int
	endYear   int
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewPowerProvider creates a POWER source; an empty opts.BaseURL uses DefaultPowerBaseURL.
func NewPowerProvider(client *http.Client, opts Options) *PowerProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultPowerBaseURL
	}

	return &PowerProvider{
		name:      "nasapower",
		baseURL:   baseURL,
		startYear: opts.StartYear,
		endYear:   opts.EndYear,
		httpCfg:   newHTTPConfig(client, opts.MaxRetries),
		circuit:   newCircuitBreaker("nasapower"),
	}
}

// Name identifies the provider in logs, metrics and errors.
func (p *PowerProvider) Name() string {
	return p.name
}

type powerPayload struct {
	Header *struct {
		FillValue *float64 `json:"fill_value"`
	} `json:"header"`
	Properties *struct {
		Parameter *struct {
			T2MMax      map[string]float64 `json:"T2M_MAX"`
			T2MMin      map[string]float64 `json:"T2M_MIN"`
			PrecTotCorr map[string]float64 `json:"PRECTOTCORR"`
			WS10M       map[string]float64 `json:"WS10M"`
		} `json:"parameter"`
	} `json:"properties"`
}

// FetchDaily downloads the daily series for coord over the configured year
// window. Values equal to the payload's fill_value are dropped.
func (p *PowerProvider) FetchDaily(ctx context.Context, coord weather.Coordinate) (*weather.RawSeries, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("parameters", powerParameters)
		values.Set("community", powerCommunity)
		values.Set("longitude", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
		values.Set("latitude", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
		values.Set("start", strconv.Itoa(p.startYear))
		values.Set("end", strconv.Itoa(p.endYear))
		values.Set("format", powerFormat)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload powerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrMalformedPayload, err)
	}
	if payload.Properties == nil || payload.Properties.Parameter == nil {
		return nil, fmt.Errorf("%w: missing properties.parameter block", weather.ErrMalformedPayload)
	}

	// POWER marks missing days with a fill value (usually -999).
	var fill *float64
	if payload.Header != nil {
		fill = payload.Header.FillValue
	}

	params := payload.Properties.Parameter
	return &weather.RawSeries{
		MaxTempC: dropFill(params.T2MMax, fill),
		MinTempC: dropFill(params.T2MMin, fill),
		PrecipMm: dropFill(params.PrecTotCorr, fill),
		WindMS:   dropFill(params.WS10M, fill),
	}, nil
}

func dropFill(values map[string]float64, fill *float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		if fill != nil && v == *fill {
			continue
		}
		out[k] = v
	}
	return out
}
