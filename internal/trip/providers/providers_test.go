package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Recorded Open-Meteo hourly response shape (timezone=UTC, minute precision,
// no zone suffix).
const openMeteoPayload = `{
  "hourly": {
    "time": ["2026-09-12T00:00", "2026-09-12T01:00"],
    "temperature_2m": [50.1, 49.3],
    "apparent_temperature": [44.2, 43.0],
    "wind_speed_10m": [18.5, 20.1],
    "wind_gusts_10m": [31.0, 35.5],
    "precipitation_probability": [10, 20]
  }
}`

// Recorded sunrise-sunset.org response shape with formatted=0.
const sunrisePayload = `{
  "results": {
    "sunrise": "2026-09-12T10:07:22+00:00",
    "sunset": "2026-09-12T23:03:54+00:00",
    "solar_noon": "2026-09-12T16:35:38+00:00",
    "day_length": 46592
  },
  "status": "OK",
  "tzid": "UTC"
}`

func fastBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func newTestOpenMeteo(baseURL string) *OpenMeteoProvider {
	p := NewOpenMeteoProvider(&http.Client{Timeout: time.Second})
	p.baseURL = baseURL
	p.httpCfg.Backoff = fastBackoff()
	return p
}

func newTestSunriseSunset(baseURL string) *SunriseSunsetProvider {
	p := NewSunriseSunsetProvider(&http.Client{Timeout: time.Second})
	p.baseURL = baseURL
	p.httpCfg.Backoff = fastBackoff()
	return p
}

func TestOpenMeteoHourlyDecodesPayload(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoPayload))
	}))
	defer srv.Close()

	p := newTestOpenMeteo(srv.URL)
	series, err := p.Hourly(context.Background(), 44.2706, -71.3033, 6288)
	require.NoError(t, err)

	require.Len(t, series.TimesISO, 2)
	assert.Equal(t, "2026-09-12T00:00", series.TimesISO[0])
	assert.Equal(t, []float64{50.1, 49.3}, series.TemperatureF)
	assert.Equal(t, []float64{44.2, 43.0}, series.ApparentF)
	assert.Equal(t, []float64{18.5, 20.1}, series.WindMph)
	assert.Equal(t, []float64{31.0, 35.5}, series.GustMph)
	assert.Equal(t, []float64{10, 20}, series.PrecipProb)

	assert.Equal(t, "fahrenheit", query.Get("temperature_unit"))
	assert.Equal(t, "mph", query.Get("wind_speed_unit"))
	assert.Equal(t, "UTC", query.Get("timezone"))
	// 6288 ft rounds to 1917 m.
	assert.Equal(t, "1917", query.Get("elevation"))
}

func TestOpenMeteoHourlyRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(openMeteoPayload))
	}))
	defer srv.Close()

	p := newTestOpenMeteo(srv.URL)
	series, err := p.Hourly(context.Background(), 44.2706, -71.3033, 6288)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, series.TimesISO, 2)
}

func TestOpenMeteoHourlyRejectsMismatchedArrays(t *testing.T) {
	payload := `{"hourly":{"time":["2026-09-12T00:00","2026-09-12T01:00"],"wind_gusts_10m":[31.0]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	p := newTestOpenMeteo(srv.URL)
	_, err := p.Hourly(context.Background(), 44.2706, -71.3033, 6288)
	require.Error(t, err)
}

func TestOpenMeteoHourlyValidatesInputs(t *testing.T) {
	// No request must go out for bad coordinates or elevations.
	p := newTestOpenMeteo("http://127.0.0.1:0")

	_, err := p.Hourly(context.Background(), 91, -71, 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")

	_, err = p.Hourly(context.Background(), 44, -181, 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")

	_, err = p.Hourly(context.Background(), 44, -71, 20000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elevation")
}

func TestSunriseSunsetDaylightDecodesPayload(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sunrisePayload))
	}))
	defer srv.Close()

	p := newTestSunriseSunset(srv.URL)
	day, err := p.Daylight(context.Background(), 44.2706, -71.3033, "2026-09-12")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-12T10:07:22+00:00", day.SunriseISO)
	assert.Equal(t, "2026-09-12T23:03:54+00:00", day.SunsetISO)
	assert.Equal(t, "0", query.Get("formatted"))
	assert.Equal(t, "2026-09-12", query.Get("date"))
}

func TestSunriseSunsetDaylightNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{},"status":"INVALID_DATE"}`))
	}))
	defer srv.Close()

	p := newTestSunriseSunset(srv.URL)
	_, err := p.Daylight(context.Background(), 44.2706, -71.3033, "not-a-date")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_DATE")
}
