package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-odds/internal/weather"
)

const powerFixture = `{
  "type": "Feature",
  "header": {"title": "NASA/POWER", "fill_value": -999.0, "start": "19810101", "end": "20201231"},
  "properties": {
    "parameter": {
      "T2M_MAX": {"19810715": 31.2, "19820715": -999.0, "19830715": 40.1},
      "T2M_MIN": {"19810715": 18.4},
      "PRECTOTCORR": {"19810715": 0.0, "19830715": 12.5},
      "WS10M": {"19810715": 3.1, "19830715": -999.0}
    }
  }
}`

func TestPowerProvider_FetchDaily(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(powerFixture))
	}))
	defer srv.Close()

	p := NewPowerProvider(srv.Client(), Options{BaseURL: srv.URL, StartYear: 1981, EndYear: 2020})
	series, err := p.FetchDaily(context.Background(), weather.Coordinate{Lat: 48.8566, Lon: 2.3522})
	require.NoError(t, err)

	q := got.URL.Query()
	assert.Equal(t, "T2M_MAX,T2M_MIN,PRECTOTCORR,WS10M", q.Get("parameters"))
	assert.Equal(t, "RE", q.Get("community"))
	assert.Equal(t, "48.8566", q.Get("latitude"))
	assert.Equal(t, "2.3522", q.Get("longitude"))
	assert.Equal(t, "1981", q.Get("start"))
	assert.Equal(t, "2020", q.Get("end"))
	assert.Equal(t, "JSON", q.Get("format"))

	assert.Equal(t, map[string]float64{"19810715": 31.2, "19830715": 40.1}, series.MaxTempC, "fill values are dropped")
	assert.Equal(t, map[string]float64{"19810715": 18.4}, series.MinTempC)
	assert.Len(t, series.PrecipMm, 2)
	assert.Equal(t, map[string]float64{"19810715": 3.1}, series.WindMS)
	assert.Equal(t, "nasapower", p.Name())
}

func TestPowerProvider_AbsentParameterMapsAreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties": {"parameter": {"T2M_MAX": {"19810715": 20}}}}`))
	}))
	defer srv.Close()

	p := NewPowerProvider(srv.Client(), Options{BaseURL: srv.URL, StartYear: 1981, EndYear: 2020})
	series, err := p.FetchDaily(context.Background(), weather.Coordinate{})
	require.NoError(t, err)

	assert.Len(t, series.MaxTempC, 1)
	assert.Empty(t, series.MinTempC)
	assert.Empty(t, series.PrecipMm)
	assert.Empty(t, series.WindMS)
}

func TestPowerProvider_MalformedPayload(t *testing.T) {
	bodies := map[string]string{
		"no properties": `{"type": "Feature"}`,
		"no parameter":  `{"properties": {}}`,
		"not json":      `<html>maintenance</html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			p := NewPowerProvider(srv.Client(), Options{BaseURL: srv.URL, StartYear: 1981, EndYear: 2020})
			_, err := p.FetchDaily(context.Background(), weather.Coordinate{})
			assert.ErrorIs(t, err, weather.ErrMalformedPayload)
		})
	}
}

func TestPowerProvider_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p := NewPowerProvider(srv.Client(), Options{BaseURL: srv.URL, StartYear: 1981, EndYear: 2020})
	_, err := p.FetchDaily(context.Background(), weather.Coordinate{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpected)
}

func TestNewPowerProvider_DefaultBaseURL(t *testing.T) {
	p := NewPowerProvider(http.DefaultClient, Options{})
	assert.Equal(t, DefaultPowerBaseURL, p.baseURL)
}
