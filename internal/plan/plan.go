package plan

import (
	"fmt"
	"time"
)

const (
	// Margin after sunrise before a start is considered reasonable.
	startMargin = 30 * time.Minute
	// Margin before sunset by which the hike must be finished.
	finishMargin = 90 * time.Minute
	// Fraction of the total duration spent before the turnaround point.
	turnaroundFraction = 0.6
)

// clockFormat renders an instant as a human-readable civil time.
const clockFormat = "3:04 PM"

// InvalidTimeError is returned when a sunrise or sunset timestamp does not
// parse to a valid instant.
type InvalidTimeError struct {
	Field string
	Value string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid %s timestamp: %q", e.Field, e.Value)
}

// Result is a computed day plan. Times are rendered in the planner's civil
// zone, both human-readable and as RFC3339 instants for downstream cards.
// Feasible is false when the duration does not fit the available daylight;
// the plan is still returned so the caller can flag it rather than lose it.
type Result struct {
	Start             string `json:"start"`
	Turnaround        string `json:"turnaround"`
	FinishDeadline    string `json:"finishDeadline"`
	StartISO          string `json:"startISO"`
	TurnaroundISO     string `json:"turnaroundISO"`
	FinishDeadlineISO string `json:"finishDeadlineISO"`
	Feasible          bool   `json:"feasible"`
}

// Planner computes conservative start/turnaround/deadline times for a day
// hike. All output times are rendered in a fixed civil time zone.
type Planner struct {
	loc *time.Location
}

// New creates a Planner rendering times in the given zone. A nil location
// falls back to UTC.
func New(loc *time.Location) *Planner {
	if loc == nil {
		loc = time.UTC
	}
	return &Planner{loc: loc}
}

// Compute derives a plan from a daylight window and a total hike duration.
//
// Rules:
//   - earliest start = sunrise + 30 min
//   - finish deadline = sunset - 90 min
//   - start = max(earliest start, finish deadline - duration)
//   - turnaround = start + 0.6 * duration, clamped to the finish deadline
//
// An overlong duration is not rejected: start pins to the earliest start and
// Feasible reports false, leaving the infeasibility decision to the caller.
func (p *Planner) Compute(sunriseISO, sunsetISO string, durationHours float64) (Result, error) {
	sunrise, err := time.Parse(time.RFC3339, sunriseISO)
	if err != nil {
		return Result{}, &InvalidTimeError{Field: "sunrise", Value: sunriseISO}
	}
	sunset, err := time.Parse(time.RFC3339, sunsetISO)
	if err != nil {
		return Result{}, &InvalidTimeError{Field: "sunset", Value: sunsetISO}
	}

	duration := time.Duration(durationHours * float64(time.Hour))

	earliestStart := sunrise.Add(startMargin)
	finishDeadline := sunset.Add(-finishMargin)
	latestStart := finishDeadline.Add(-duration)

	feasible := !latestStart.Before(earliestStart)
	start := earliestStart
	if feasible {
		start = latestStart
	}

	turnaround := start.Add(time.Duration(turnaroundFraction * float64(duration)))
	if turnaround.After(finishDeadline) {
		turnaround = finishDeadline
	}

	return Result{
		Start:             p.format(start),
		Turnaround:        p.format(turnaround),
		FinishDeadline:    p.format(finishDeadline),
		StartISO:          p.iso(start),
		TurnaroundISO:     p.iso(turnaround),
		FinishDeadlineISO: p.iso(finishDeadline),
		Feasible:          feasible,
	}, nil
}

func (p *Planner) format(t time.Time) string {
	return t.In(p.loc).Format(clockFormat)
}

func (p *Planner) iso(t time.Time) string {
	return t.In(p.loc).Format(time.RFC3339)
}
