package blocks

import (
	"strings"

	"github.com/guide48/peak-planner/internal/common"
	"github.com/guide48/peak-planner/internal/risk"
)

// The three closed block kinds the presentation layer understands.
const (
	TypeDaylightCard = "daylight_card"
	TypeRiskBadge    = "risk_badge"
	TypeForecastCard = "forecast_card"
)

// Block is one of the three normalized render-block variants.
type Block interface {
	BlockType() string
}

// DaylightCard presents the planned day against the daylight window.
// Pointer fields are null when the producer supplied nothing usable.
type DaylightCard struct {
	Type              string  `json:"type"`
	SunriseISO        *string `json:"sunriseISO"`
	SunsetISO         *string `json:"sunsetISO"`
	StartISO          *string `json:"startISO"`
	TurnaroundISO     *string `json:"turnaroundISO"`
	FinishDeadlineISO *string `json:"finishDeadlineISO,omitempty"`
}

func (DaylightCard) BlockType() string { return TypeDaylightCard }

// RiskBadge presents the overall risk level with its reasons.
type RiskBadge struct {
	Type    string     `json:"type"`
	Level   risk.Level `json:"level"`
	Reasons []string   `json:"reasons"`
}

func (RiskBadge) BlockType() string { return TypeRiskBadge }

// ForecastCard presents summit-style summary conditions.
type ForecastCard struct {
	Type              string   `json:"type"`
	SummitTempF       *float64 `json:"summitTempF,omitempty"`
	SummitWindGustMph *float64 `json:"summitWindGustMph,omitempty"`
	PrecipProbPct     *float64 `json:"precipProbPct,omitempty"`
	Note              string   `json:"note,omitempty"`
}

func (ForecastCard) BlockType() string { return TypeForecastCard }

// Accepted field spellings per canonical field, in priority order. Upstream
// producers have emitted all of these at one time or another.
var (
	sunriseAliases        = []string{"sunriseISO", "sunrise", "sunRise"}
	sunsetAliases         = []string{"sunsetISO", "sunset", "sunSet"}
	startAliases          = []string{"startISO", "start"}
	turnaroundAliases     = []string{"turnaroundISO", "turnaround", "turn"}
	finishDeadlineAliases = []string{"finishDeadlineISO", "finishDeadline", "finish"}

	summitTempAliases = []string{"summitTempF", "minApparentF"}
	summitGustAliases = []string{"summitWindGustMph", "maxGustMph"}
	precipProbAliases = []string{"precipProbPct", "maxPrecipProb"}
)

// Normalize reconciles loosely shaped upstream blocks into the canonical
// variants. Entries whose type does not case-insensitively match a known kind
// are dropped, not failed on; input order is preserved.
func Normalize(raw []map[string]any) []Block {
	out := make([]Block, 0, len(raw))
	for _, b := range raw {
		if b == nil {
			continue
		}
		t, _ := b["type"].(string)
		switch strings.ToLower(strings.TrimSpace(t)) {
		case TypeDaylightCard:
			out = append(out, normalizeDaylight(b))
		case TypeRiskBadge:
			out = append(out, normalizeRisk(b))
		case TypeForecastCard:
			out = append(out, normalizeForecast(b))
		}
	}
	return out
}

func normalizeDaylight(b map[string]any) DaylightCard {
	return DaylightCard{
		Type:              TypeDaylightCard,
		SunriseISO:        pickString(b, sunriseAliases),
		SunsetISO:         pickString(b, sunsetAliases),
		StartISO:          pickString(b, startAliases),
		TurnaroundISO:     pickString(b, turnaroundAliases),
		FinishDeadlineISO: pickString(b, finishDeadlineAliases),
	}
}

func normalizeRisk(b map[string]any) RiskBadge {
	level := risk.LevelLow
	if s, ok := b["level"].(string); ok {
		switch risk.Level(strings.ToLower(strings.TrimSpace(s))) {
		case risk.LevelHigh:
			level = risk.LevelHigh
		case risk.LevelModerate:
			level = risk.LevelModerate
		}
	}

	reasons := []string{}
	if items, ok := b["reasons"].([]any); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				reasons = append(reasons, s)
			}
		}
	}

	return RiskBadge{Type: TypeRiskBadge, Level: level, Reasons: reasons}
}

func normalizeForecast(b map[string]any) ForecastCard {
	card := ForecastCard{Type: TypeForecastCard}

	// A raw hourly array wins over any directly supplied scalars.
	if rows, ok := b["forecast"].([]any); ok && len(rows) > 0 {
		card.SummitTempF = foldRows(rows, "apparentF", false)
		card.SummitWindGustMph = foldRows(rows, "gustMph", true)
		card.PrecipProbPct = foldRows(rows, "precipProb", true)
	}

	if card.SummitTempF == nil {
		card.SummitTempF = pickNumber(b, summitTempAliases)
	}
	if card.SummitWindGustMph == nil {
		card.SummitWindGustMph = pickNumber(b, summitGustAliases)
	}
	if card.PrecipProbPct == nil {
		card.PrecipProbPct = pickNumber(b, precipProbAliases)
	}

	if note, ok := b["note"].(string); ok && note != "" {
		card.Note = note
	}

	return card
}

// foldRows reduces one field across hourly rows, taking the max (or min for
// apparent temperature, which reads coldest-hour-wins).
func foldRows(rows []any, field string, wantMax bool) *float64 {
	var acc *float64
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		v, ok := common.ToNumber(row[field])
		if !ok {
			continue
		}
		if acc == nil || (wantMax && v > *acc) || (!wantMax && v < *acc) {
			v := v
			acc = &v
		}
	}
	return acc
}

func pickString(b map[string]any, aliases []string) *string {
	if s, ok := common.FirstString(b, aliases...); ok {
		return &s
	}
	return nil
}

func pickNumber(b map[string]any, aliases []string) *float64 {
	if n, ok := common.FirstNumber(b, aliases...); ok {
		return &n
	}
	return nil
}
