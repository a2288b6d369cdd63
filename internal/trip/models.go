package trip

import (
	"strings"
	"time"

	"github.com/guide48/peak-planner/internal/blocks"
	"github.com/guide48/peak-planner/internal/peaks"
	"github.com/guide48/peak-planner/internal/plan"
	"github.com/guide48/peak-planner/internal/risk"
)

// Daylight is the sunrise/sunset window for one date and location.
// Timestamps are RFC3339 instants with their UTC offset included.
type Daylight struct {
	SunriseISO string `json:"sunriseISO"`
	SunsetISO  string `json:"sunsetISO"`
}

// Snapshot is one completed planning round for a peak group on a date.
type Snapshot struct {
	ID        string          `json:"id"`
	Request   string          `json:"request"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Group     peaks.Group     `json:"peakGroup"`
	Daylight  Daylight        `json:"daylight"`
	Plan      plan.Result     `json:"plan"`
	Risk      risk.Assessment `json:"risk"`
	Exposed   bool            `json:"exposed"`
	Blocks    []blocks.Block  `json:"blocks"`
	CreatedAt time.Time       `json:"createdAt"` // always UTC
}

// GroupKey returns a canonical store key for a resolved peak group.
func GroupKey(g peaks.Group) string {
	names := make([]string, 0, len(g.Peaks))
	for _, p := range g.Peaks {
		names = append(names, peaks.NormalizeName(p.Name))
	}
	return strings.Join(names, "+")
}
