package peaks

// DefaultDurationHours is assumed for any peak without a table entry.
const DefaultDurationHours = 6

// DurationTable maps a canonical peak name to its expected round-trip hike
// duration in hours. Only the longer hikes are listed explicitly.
type DurationTable map[string]float64

// DefaultDurations returns the built-in duration table.
func DefaultDurations() DurationTable {
	return DurationTable{
		"Mount Washington": 8,
		"Mount Lafayette":  7,
		"Mount Lincoln":    7,
		"Mount Adams":      7.5,
		"Mount Jefferson":  7,
		"South Twin":       7,
		"Bondcliff":        8,
		"Mount Bond":       8,
		"West Bond":        7,
	}
}

// Hours returns the expected duration for a peak, falling back to the default.
// Total function: an unlisted peak is not an error.
func (t DurationTable) Hours(peakName string) float64 {
	if d, ok := t[peakName]; ok {
		return d
	}
	return DefaultDurationHours
}
