package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/guide48/peak-planner/internal/forecast"
)

// maxElevationFt is a sanity bound for summit elevations; the White Mountains
// top out well under this.
const maxElevationFt = 10000

const hourlyVariables = "temperature_2m,apparent_temperature,wind_speed_10m,wind_gusts_10m,precipitation_probability"

// OpenMeteoProvider fetches hourly summit forecasts from Open-Meteo.
// Open-Meteo does not require an API key.
type OpenMeteoProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo"),
	}
}

// Hourly fetches the hourly forecast for a location, adjusted to the given
// summit elevation (feet; converted to meters for the upstream API).
func (p *OpenMeteoProvider) Hourly(ctx context.Context, lat, lon, elevationFt float64) (forecast.Series, error) {
	if lat < -90 || lat > 90 {
		return forecast.Series{}, fmt.Errorf("latitude %f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return forecast.Series{}, fmt.Errorf("longitude %f out of range", lon)
	}
	if elevationFt < 0 || elevationFt > maxElevationFt {
		return forecast.Series{}, fmt.Errorf("elevation %f ft out of range", elevationFt)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("hourly", hourlyVariables)
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
		values.Set("timezone", "UTC")
		if elevationFt > 0 {
			values.Set("elevation", fmt.Sprintf("%d", int(math.Round(elevationFt*0.3048))))
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return forecast.Series{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time                     []string  `json:"time"`
			Temperature2m            []float64 `json:"temperature_2m"`
			ApparentTemperature      []float64 `json:"apparent_temperature"`
			WindSpeed10m             []float64 `json:"wind_speed_10m"`
			WindGusts10m             []float64 `json:"wind_gusts_10m"`
			PrecipitationProbability []float64 `json:"precipitation_probability"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Series{}, err
	}

	series := forecast.Series{
		TimesISO:     payload.Hourly.Time,
		TemperatureF: payload.Hourly.Temperature2m,
		ApparentF:    payload.Hourly.ApparentTemperature,
		WindMph:      payload.Hourly.WindSpeed10m,
		GustMph:      payload.Hourly.WindGusts10m,
		PrecipProb:   payload.Hourly.PrecipitationProbability,
	}
	if err := series.Validate(); err != nil {
		return forecast.Series{}, err
	}
	return series, nil
}
