package peaks

import "regexp"

// Group is an ordered set of peaks resolved from a single request, together
// with the combined expected duration for hiking them as one outing.
type Group struct {
	Peaks                 []Peak  `json:"peaks"`
	CombinedDurationHours float64 `json:"combinedDurationHours"`
}

// groupAliases maps common nicknames for linked peaks to their member lists.
// Keys are normalized; member names resolve through the catalog like any
// other lookup.
var groupAliases = map[string][]string{
	"the bonds": {"Bondcliff", "Bond", "West Bond"},
	"bonds":     {"Bondcliff", "Bond", "West Bond"},
	"franconia ridge": {
		"Lafayette",
		"Lincoln",
		"Liberty",
		"Flume",
	},
	"presidential range": {
		"Washington",
		"Adams",
		"Jefferson",
		"Madison",
		"Monroe",
		"Eisenhower",
		"Pierce",
	},
}

// listSep splits a multi-peak request on commas or the standalone word "and".
var listSep = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

// Resolver turns free-text peak requests into peak groups.
type Resolver struct {
	catalog   *Catalog
	durations DurationTable
}

// NewResolver creates a resolver over the given catalog and duration table.
func NewResolver(catalog *Catalog, durations DurationTable) *Resolver {
	return &Resolver{catalog: catalog, durations: durations}
}

// Resolve expands a request into a Group. Group aliases take precedence over
// comma/"and" list splitting; any unresolvable name fails the whole request
// with a *NotFoundError (no partial success).
func (r *Resolver) Resolve(request string) (Group, error) {
	target := NormalizeName(request)

	if names, ok := groupAliases[target]; ok {
		return r.group(names)
	}

	parts := splitNonEmpty(target)
	if len(parts) > 1 {
		return r.group(parts)
	}

	return r.group([]string{target})
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range listSep.Split(s, -1) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *Resolver) group(names []string) (Group, error) {
	resolved := make([]Peak, 0, len(names))
	for _, n := range names {
		p, err := r.catalog.Lookup(n)
		if err != nil {
			return Group{}, err
		}
		resolved = append(resolved, p)
	}

	// Base duration is the hardest single peak; each linked peak beyond the
	// first adds an hour for the traverse.
	var base float64
	for _, p := range resolved {
		if d := r.durations.Hours(p.Name); d > base {
			base = d
		}
	}

	return Group{
		Peaks:                 resolved,
		CombinedDurationHours: base + float64(len(resolved)-1),
	}, nil
}
