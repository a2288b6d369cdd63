package peaks

import "strings"

// ExposedSet holds the peaks whose summit or ridge sits above treeline, where
// high wind contributes more heavily to weather risk.
type ExposedSet map[string]struct{}

// DefaultExposed returns the built-in exposed-peak set.
func DefaultExposed() ExposedSet {
	names := []string{
		// Presidentials
		"Mount Washington",
		"Mount Adams",
		"Mount Jefferson",
		"Mount Madison",
		"Mount Monroe",
		"Mount Eisenhower",
		"Mount Pierce", // conservative

		// Franconia Ridge
		"Mount Lafayette",
		"Mount Lincoln",

		// Bonds
		"Mount Bond",
		"West Bond",
		"Bondcliff",

		// Other
		"Mount Moosilauke",
		"South Twin",
		"Mount Garfield",
		"Mount Liberty",
		"Mount Flume",
		"Cannon Mountain",
	}
	set := make(ExposedSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether the named peak is exposed.
func (s ExposedSet) Contains(name string) bool {
	_, ok := s[strings.TrimSpace(name)]
	return ok
}
