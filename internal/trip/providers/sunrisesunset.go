package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/guide48/peak-planner/internal/trip"
)

// SunriseSunsetProvider fetches daylight windows from sunrise-sunset.org.
// With formatted=0 the API returns full RFC3339 instants in UTC.
type SunriseSunsetProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSunriseSunsetProvider(client *http.Client) *SunriseSunsetProvider {
	return &SunriseSunsetProvider{
		baseURL: "https://api.sunrise-sunset.org/json",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("sunrise-sunset"),
	}
}

// Daylight fetches sunrise/sunset for a location and date (YYYY-MM-DD).
func (p *SunriseSunsetProvider) Daylight(ctx context.Context, lat, lon float64, date string) (trip.Daylight, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lng", fmt.Sprintf("%f", lon))
		values.Set("date", date)
		values.Set("formatted", "0")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return trip.Daylight{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results struct {
			Sunrise string `json:"sunrise"`
			Sunset  string `json:"sunset"`
		} `json:"results"`
		Status string `json:"status"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return trip.Daylight{}, err
	}
	if payload.Status != "OK" {
		return trip.Daylight{}, fmt.Errorf("sunrise-sunset status: %s", payload.Status)
	}

	return trip.Daylight{
		SunriseISO: payload.Results.Sunrise,
		SunsetISO:  payload.Results.Sunset,
	}, nil
}
