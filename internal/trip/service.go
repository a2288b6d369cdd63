package trip

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/guide48/peak-planner/internal/blocks"
	"github.com/guide48/peak-planner/internal/forecast"
	"github.com/guide48/peak-planner/internal/peaks"
	"github.com/guide48/peak-planner/internal/plan"
	"github.com/guide48/peak-planner/internal/risk"
)

// Service exposes the planning engine as a set of named operations and
// orchestrates full planning rounds against the external providers.
type Service struct {
	catalog     *peaks.Catalog
	resolver    *peaks.Resolver
	durations   peaks.DurationTable
	exposed     peaks.ExposedSet
	planner     *plan.Planner
	daylight    DaylightProvider
	forecasts   ForecastProvider
	store       Store
	clock       Clock
	windowHours int
}

// Deps bundles the collaborators a Service needs. Clock defaults to the
// system clock and WindowHours to the forecast default when unset.
type Deps struct {
	Catalog     *peaks.Catalog
	Resolver    *peaks.Resolver
	Durations   peaks.DurationTable
	Exposed     peaks.ExposedSet
	Planner     *plan.Planner
	Daylight    DaylightProvider
	Forecasts   ForecastProvider
	Store       Store
	Clock       Clock
	WindowHours int
}

// NewService creates a new Service.
func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = SystemClock()
	}
	if d.WindowHours <= 0 {
		d.WindowHours = forecast.DefaultWindowHours
	}
	return &Service{
		catalog:     d.Catalog,
		resolver:    d.Resolver,
		durations:   d.Durations,
		exposed:     d.Exposed,
		planner:     d.Planner,
		daylight:    d.Daylight,
		forecasts:   d.Forecasts,
		store:       d.Store,
		clock:       d.Clock,
		windowHours: d.WindowHours,
	}
}

// Peaks returns the full reference catalog.
func (s *Service) Peaks() []peaks.Peak {
	return s.catalog.All()
}

// ResolvePeak resolves a free-text peak request into a peak group.
func (s *Service) ResolvePeak(name string) (peaks.Group, error) {
	return s.resolver.Resolve(name)
}

// DayPlan is a computed plan together with the duration that produced it.
type DayPlan struct {
	plan.Result
	UsedDurationHours float64 `json:"usedDurationHours"`
}

// PlanDay computes start/turnaround/deadline for a peak from its daylight
// window. An explicit durationHours overrides the duration table lookup.
func (s *Service) PlanDay(peakName, sunriseISO, sunsetISO string, durationHours *float64) (DayPlan, error) {
	used := s.durations.Hours(s.canonicalName(peakName))
	if durationHours != nil {
		used = *durationHours
	}

	result, err := s.planner.Compute(sunriseISO, sunsetISO, used)
	if err != nil {
		return DayPlan{}, err
	}
	return DayPlan{Result: result, UsedDurationHours: used}, nil
}

// RiskReport is a risk assessment together with the exposure flag that was
// applied while scoring.
type RiskReport struct {
	risk.Assessment
	Exposed bool `json:"exposed"`
}

// ScoreRisk windows the hourly arrays to the next windowHours (0 means the
// default) and scores them, treating the peak's exposure as a scoring input.
func (s *Service) ScoreRisk(peakName string, timesISO []string, apparentF, gustMph, precipProb []float64, windowHours int) RiskReport {
	exposed := s.exposed.Contains(s.canonicalName(peakName))
	if windowHours <= 0 {
		windowHours = s.windowHours
	}

	_, sliced := forecast.SliceNext(s.clock.Now(), timesISO, map[string][]float64{
		"apparentF":  apparentF,
		"gustMph":    gustMph,
		"precipProb": precipProb,
	}, windowHours)

	assessment := risk.Score(sliced["apparentF"], sliced["gustMph"], sliced["precipProb"], exposed)
	return RiskReport{Assessment: assessment, Exposed: exposed}
}

// NormalizeBlocks reconciles loosely shaped upstream blocks into the three
// canonical render-block variants.
func (s *Service) NormalizeBlocks(raw []map[string]any) []blocks.Block {
	return blocks.Normalize(raw)
}

// PlanTrip runs a full planning round: resolve the request, fetch daylight
// and the summit forecast, compute the plan, score the windowed risk, build
// the render blocks, and persist a snapshot. Any collaborator failure aborts
// the round with no partial snapshot written.
func (s *Service) PlanTrip(ctx context.Context, request, date string) (*Snapshot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}

	group, err := s.resolver.Resolve(request)
	if err != nil {
		return nil, err
	}
	first := group.Peaks[0]

	day, err := s.daylight.Daylight(ctx, first.Lat, first.Lon, date)
	if err != nil {
		return nil, fmt.Errorf("daylight lookup for %s: %w", first.Name, err)
	}

	series, err := s.forecasts.Hourly(ctx, first.Lat, first.Lon, summitElevation(group))
	if err != nil {
		return nil, fmt.Errorf("forecast lookup for %s: %w", first.Name, err)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	dayPlan, err := s.planner.Compute(day.SunriseISO, day.SunsetISO, group.CombinedDurationHours)
	if err != nil {
		return nil, err
	}

	exposed := false
	for _, p := range group.Peaks {
		if s.exposed.Contains(p.Name) {
			exposed = true
			break
		}
	}

	_, sliced := forecast.SliceNext(s.clock.Now(), series.TimesISO, map[string][]float64{
		"apparentF":  series.ApparentF,
		"gustMph":    series.GustMph,
		"precipProb": series.PrecipProb,
	}, s.windowHours)
	assessment := risk.Score(sliced["apparentF"], sliced["gustMph"], sliced["precipProb"], exposed)

	snapshot := &Snapshot{
		ID:        uuid.NewString(),
		Request:   request,
		Date:      date,
		Group:     group,
		Daylight:  day,
		Plan:      dayPlan,
		Risk:      assessment,
		Exposed:   exposed,
		Blocks:    buildBlocks(day, dayPlan, assessment),
		CreatedAt: s.clock.Now().UTC(),
	}

	s.store.SavePlan(GroupKey(group), *snapshot)
	log.Printf("trip: planned %s on %s (level=%s, feasible=%t)", GroupKey(group), date, assessment.Level, dayPlan.Feasible)
	return snapshot, nil
}

// LatestTrip returns the most recent stored snapshot for a peak request.
func (s *Service) LatestTrip(request string) (Snapshot, error) {
	group, err := s.resolver.Resolve(request)
	if err != nil {
		return Snapshot{}, err
	}
	return s.store.GetLatest(GroupKey(group))
}

// canonicalName maps a free-form peak name onto its catalog spelling so the
// duration table and exposed set match regardless of input casing. Unknown
// names pass through unchanged; both lookups have total fallbacks.
func (s *Service) canonicalName(peakName string) string {
	if p, err := s.catalog.Lookup(peakName); err == nil {
		return p.Name
	}
	return peakName
}

// summitElevation is the highest elevation in the group, used to adjust the
// forecast to summit conditions.
func summitElevation(g peaks.Group) float64 {
	var elev float64
	for _, p := range g.Peaks {
		if p.ElevationFt > elev {
			elev = p.ElevationFt
		}
	}
	return elev
}

func buildBlocks(day Daylight, dayPlan plan.Result, assessment risk.Assessment) []blocks.Block {
	sunrise, sunset := day.SunriseISO, day.SunsetISO
	start, turnaround, finish := dayPlan.StartISO, dayPlan.TurnaroundISO, dayPlan.FinishDeadlineISO

	return []blocks.Block{
		blocks.DaylightCard{
			Type:              blocks.TypeDaylightCard,
			SunriseISO:        &sunrise,
			SunsetISO:         &sunset,
			StartISO:          &start,
			TurnaroundISO:     &turnaround,
			FinishDeadlineISO: &finish,
		},
		blocks.RiskBadge{
			Type:    blocks.TypeRiskBadge,
			Level:   assessment.Level,
			Reasons: assessment.Reasons,
		},
		blocks.ForecastCard{
			Type:              blocks.TypeForecastCard,
			SummitTempF:       assessment.Summary.MinApparentF,
			SummitWindGustMph: assessment.Summary.MaxGustMph,
			PrecipProbPct:     assessment.Summary.MaxPrecipProb,
		},
	}
}
