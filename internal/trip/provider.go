package trip

import (
	"context"
	"time"

	"github.com/guide48/peak-planner/internal/forecast"
)

// Clock supplies the current instant. Injected so that forecast windowing is
// reproducible in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// DaylightProvider looks up sunrise/sunset for a location and date
// (YYYY-MM-DD).
type DaylightProvider interface {
	Daylight(ctx context.Context, lat, lon float64, date string) (Daylight, error)
}

// ForecastProvider fetches an hourly forecast for a location, adjusted to the
// given summit elevation in feet.
type ForecastProvider interface {
	Hourly(ctx context.Context, lat, lon, elevationFt float64) (forecast.Series, error)
}

// Store is the contract the snapshot store (and any future persistent store)
// must satisfy.
type Store interface {
	SavePlan(key string, snapshot Snapshot)
	GetLatest(key string) (Snapshot, error)
	GetRange(key string, from, to time.Time) ([]Snapshot, error)
}
