package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// Sunrise 06:00, sunset 19:00 local, 6h hike:
// earliest start 06:30, deadline 17:30, latest start 11:30 -> start 11:30,
// turnaround 11:30 + 3.6h = 15:06.
func TestComputeTypicalDay(t *testing.T) {
	p := New(eastern(t))

	result, err := p.Compute("2026-09-12T06:00:00-04:00", "2026-09-12T19:00:00-04:00", 6)
	require.NoError(t, err)

	assert.Equal(t, "11:30 AM", result.Start)
	assert.Equal(t, "3:06 PM", result.Turnaround)
	assert.Equal(t, "5:30 PM", result.FinishDeadline)
	assert.True(t, result.Feasible)
}

func TestComputeShortHikeStartsAtLatestStart(t *testing.T) {
	p := New(eastern(t))

	// 2h hike: latest start = 17:30 - 2h = 15:30, well after earliest start.
	result, err := p.Compute("2026-09-12T06:00:00-04:00", "2026-09-12T19:00:00-04:00", 2)
	require.NoError(t, err)

	assert.Equal(t, "3:30 PM", result.Start)
	assert.True(t, result.Feasible)
}

func TestComputeOverlongHikeIsInfeasibleNotRejected(t *testing.T) {
	p := New(eastern(t))

	// 14h cannot fit between 06:30 and 17:30; start pins to earliest start.
	result, err := p.Compute("2026-09-12T06:00:00-04:00", "2026-09-12T19:00:00-04:00", 14)
	require.NoError(t, err)

	assert.Equal(t, "6:30 AM", result.Start)
	assert.False(t, result.Feasible)
	// 0.6 * 14h = 8.4h past start, still before the deadline.
	assert.Equal(t, "2:54 PM", result.Turnaround)
}

func TestComputeTurnaroundClampsToDeadline(t *testing.T) {
	p := New(eastern(t))

	// 0.6 * 20h = 12h past a 06:30 start would pass 17:30.
	result, err := p.Compute("2026-09-12T06:00:00-04:00", "2026-09-12T19:00:00-04:00", 20)
	require.NoError(t, err)

	assert.Equal(t, "5:30 PM", result.Turnaround)
	assert.Equal(t, result.FinishDeadline, result.Turnaround)
}

func TestComputeOrderingInvariant(t *testing.T) {
	p := New(eastern(t))

	for _, hours := range []float64{0.5, 2, 6, 8.5, 11, 14, 20} {
		result, err := p.Compute("2026-09-12T06:00:00-04:00", "2026-09-12T19:00:00-04:00", hours)
		require.NoError(t, err)

		start, err := time.Parse(time.RFC3339, result.StartISO)
		require.NoError(t, err)
		turnaround, err := time.Parse(time.RFC3339, result.TurnaroundISO)
		require.NoError(t, err)
		deadline, err := time.Parse(time.RFC3339, result.FinishDeadlineISO)
		require.NoError(t, err)

		if result.Feasible {
			assert.False(t, start.After(turnaround), "start <= turnaround for %.1fh", hours)
		}
		assert.False(t, turnaround.After(deadline), "turnaround <= deadline for %.1fh", hours)
	}
}

func TestComputeDeadlineIsExactlySunsetMinus90(t *testing.T) {
	p := New(eastern(t))

	result, err := p.Compute("2026-09-12T06:12:00-04:00", "2026-09-12T18:47:00-04:00", 6)
	require.NoError(t, err)
	assert.Equal(t, "5:17 PM", result.FinishDeadline)
}

func TestComputeInvalidTimestamps(t *testing.T) {
	p := New(eastern(t))

	_, err := p.Compute("not-a-time", "2026-09-12T19:00:00-04:00", 6)
	var invalid *InvalidTimeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sunrise", invalid.Field)

	_, err = p.Compute("2026-09-12T06:00:00-04:00", "junk", 6)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sunset", invalid.Field)
}

func TestComputeRendersInPlannerZone(t *testing.T) {
	// UTC inputs, Eastern output: 10:00Z sunrise is 6:00 AM EDT.
	p := New(eastern(t))

	result, err := p.Compute("2026-09-12T10:00:00+00:00", "2026-09-12T23:00:00+00:00", 6)
	require.NoError(t, err)
	assert.Equal(t, "11:30 AM", result.Start)
	assert.Equal(t, "5:30 PM", result.FinishDeadline)
}
