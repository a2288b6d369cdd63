package risk

// Level is a normalized overall risk rating.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Scoring thresholds. All are inclusive: a boundary value triggers.
const (
	GustThresholdMph   = 35
	ApparentThresholdF = 10
	PrecipThresholdPct = 60
)

// NoRiskReason is reported when no scoring condition triggers, so the
// reasons list is never empty.
const NoRiskReason = "No major weather risks detected."

// Summary holds the window extremes the score was derived from. Fields are
// nil when the corresponding input sequence was empty.
type Summary struct {
	MaxGustMph    *float64 `json:"maxGustMph"`
	MinApparentF  *float64 `json:"minApparentF"`
	MaxPrecipProb *float64 `json:"maxPrecipProb"`
}

// Assessment is the result of scoring a forecast window.
type Assessment struct {
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons"`
	Summary Summary  `json:"summary"`
}

// Score computes the overall hiking risk for a forecast window.
//
// Points: gusts >= 35 mph add 2 (3 on an exposed ridge), apparent temperature
// <= 10F adds 2, precipitation probability >= 60% adds 1. Totals map to
// levels: 0-1 low, 2 moderate, 3+ high. Empty input sequences contribute
// nothing and yield nil summary stats; they are not an error.
func Score(apparentF, gustMph, precipProb []float64, exposed bool) Assessment {
	maxGust := maxOf(gustMph)
	minApp := minOf(apparentF)
	maxPrecip := maxOf(precipProb)

	var reasons []string
	score := 0

	if maxGust != nil && *maxGust >= GustThresholdMph {
		points, reason := 2, "Wind gusts ≥ 35 mph"
		if exposed {
			points, reason = 3, reason+" (exposed ridge)"
		}
		score += points
		reasons = append(reasons, reason)
	}

	if minApp != nil && *minApp <= ApparentThresholdF {
		score += 2
		reasons = append(reasons, "Apparent temperature ≤ 10°F")
	}

	if maxPrecip != nil && *maxPrecip >= PrecipThresholdPct {
		score++
		reasons = append(reasons, "Precipitation probability ≥ 60%")
	}

	level := LevelLow
	switch {
	case score >= 3:
		level = LevelHigh
	case score == 2:
		level = LevelModerate
	}

	if len(reasons) == 0 {
		reasons = append(reasons, NoRiskReason)
	}

	return Assessment{
		Level:   level,
		Reasons: reasons,
		Summary: Summary{
			MaxGustMph:    maxGust,
			MinApparentF:  minApp,
			MaxPrecipProb: maxPrecip,
		},
	}
}

func maxOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return &m
}

func minOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return &m
}
