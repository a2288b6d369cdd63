package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyTimes(base time.Time, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
	}
	return out
}

func counting(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestSliceNextEmptyTimesIsIdentity(t *testing.T) {
	arrays := map[string][]float64{"gustMph": {1, 2, 3}}

	times, sliced := SliceNext(time.Now(), nil, arrays, 12)
	assert.Nil(t, times)
	assert.Equal(t, arrays, sliced)
}

func TestSliceNextStartsAtFirstFutureHour(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(base, 24)
	now := base.Add(2*time.Hour + 30*time.Minute)

	outTimes, out := SliceNext(now, times, map[string][]float64{"v": counting(24)}, 4)
	require.Len(t, outTimes, 4)
	assert.Equal(t, times[3], outTimes[0])
	assert.Equal(t, []float64{3, 4, 5, 6}, out["v"])
}

func TestSliceNextAllPastFallsBackToStart(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(base, 6)
	now := base.Add(48 * time.Hour)

	outTimes, out := SliceNext(now, times, map[string][]float64{"v": counting(6)}, 12)
	require.NotEmpty(t, outTimes, "non-empty input must never produce an empty window")
	assert.Equal(t, times[0], outTimes[0])
	assert.Equal(t, counting(6), out["v"])
}

func TestSliceNextWindowClampsToSeriesLength(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(base, 8)

	outTimes, out := SliceNext(base.Add(5*time.Hour), times, map[string][]float64{"v": counting(8)}, 12)
	assert.Len(t, outTimes, 3)
	assert.Equal(t, []float64{5, 6, 7}, out["v"])
}

func TestSliceNextClampsPerArray(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(base, 24)

	// A shorter parallel array must not cause an out-of-range slice.
	_, out := SliceNext(base.Add(10*time.Hour), times, map[string][]float64{
		"full":  counting(24),
		"short": counting(4),
	}, 6)
	assert.Equal(t, []float64{10, 11, 12, 13, 14, 15}, out["full"])
	assert.Empty(t, out["short"])
}

func TestSliceNextDefaultWindow(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	times := hourlyTimes(base, 48)

	outTimes, _ := SliceNext(base, times, nil, 0)
	assert.Len(t, outTimes, DefaultWindowHours)
}

func TestSliceNextTolerantTimestampLayouts(t *testing.T) {
	// Minute-precision timestamps without a zone, as Open-Meteo emits them.
	times := []string{"2026-09-12T00:00", "2026-09-12T01:00", "2026-09-12T02:00"}
	now := time.Date(2026, 9, 12, 0, 30, 0, 0, time.UTC)

	outTimes, _ := SliceNext(now, times, nil, 2)
	require.Len(t, outTimes, 2)
	assert.Equal(t, "2026-09-12T01:00", outTimes[0])
}

func TestSeriesValidate(t *testing.T) {
	base := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	good := Series{
		TimesISO:   hourlyTimes(base, 3),
		ApparentF:  counting(3),
		GustMph:    counting(3),
		PrecipProb: counting(3),
	}
	assert.NoError(t, good.Validate())

	mismatched := good
	mismatched.GustMph = counting(2)
	assert.Error(t, mismatched.Validate())

	decreasing := good
	decreasing.TimesISO = []string{
		base.Add(time.Hour).Format(time.RFC3339),
		base.Format(time.RFC3339),
		base.Add(2 * time.Hour).Format(time.RFC3339),
	}
	assert.Error(t, decreasing.Validate())
}

func TestSeriesValidateRejectsGarbageTimestamps(t *testing.T) {
	s := Series{TimesISO: []string{"yesterday-ish"}}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "unparseable")
}
