package forecast

import (
	"fmt"
	"time"
)

// DefaultWindowHours is the forecast window used when the caller does not
// ask for a specific length.
const DefaultWindowHours = 12

// Series holds parallel hourly forecast arrays, indexed by hour.
type Series struct {
	TimesISO     []string  `json:"time"`
	TemperatureF []float64 `json:"temperatureF"`
	ApparentF    []float64 `json:"apparentTempF"`
	WindMph      []float64 `json:"windMph"`
	GustMph      []float64 `json:"gustMph"`
	PrecipProb   []float64 `json:"precipProb"`
}

// Validate checks the series invariants: every non-empty value array matches
// the timestamp count, and timestamps are non-decreasing.
func (s Series) Validate() error {
	n := len(s.TimesISO)
	for name, arr := range map[string][]float64{
		"temperatureF":  s.TemperatureF,
		"apparentTempF": s.ApparentF,
		"windMph":       s.WindMph,
		"gustMph":       s.GustMph,
		"precipProb":    s.PrecipProb,
	} {
		if len(arr) != 0 && len(arr) != n {
			return fmt.Errorf("forecast series: %s has %d entries, expected %d", name, len(arr), n)
		}
	}

	var prev time.Time
	for i, iso := range s.TimesISO {
		t, ok := parseInstant(iso)
		if !ok {
			return fmt.Errorf("forecast series: unparseable timestamp %q at index %d", iso, i)
		}
		if i > 0 && t.Before(prev) {
			return fmt.Errorf("forecast series: timestamps decrease at index %d", i)
		}
		prev = t
	}
	return nil
}

// SliceNext extracts the next windowHours of the series starting at the first
// timestamp at or after now. "Now" is always an explicit parameter so the
// selection is reproducible. If timesISO is empty the inputs are returned
// unchanged; if every timestamp is in the past the window starts at index 0.
// Each value array is sliced and clamped to its own length, so a non-empty
// input never produces an empty window.
func SliceNext(now time.Time, timesISO []string, arrays map[string][]float64, windowHours int) ([]string, map[string][]float64) {
	if len(timesISO) == 0 {
		return timesISO, arrays
	}
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}

	idx := 0
	for i, iso := range timesISO {
		t, ok := parseInstant(iso)
		if ok && !t.Before(now) {
			idx = i
			break
		}
	}

	end := idx + windowHours
	if end > len(timesISO) {
		end = len(timesISO)
	}

	out := make(map[string][]float64, len(arrays))
	for k, arr := range arrays {
		lo, hi := idx, end
		if lo > len(arr) {
			lo = len(arr)
		}
		if hi > len(arr) {
			hi = len(arr)
		}
		out[k] = arr[lo:hi]
	}
	return timesISO[idx:end], out
}

// parseInstant is tolerant of the hourly timestamp shapes upstream forecast
// services produce: full RFC3339 or minute/second precision without a zone
// (taken as UTC).
func parseInstant(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
