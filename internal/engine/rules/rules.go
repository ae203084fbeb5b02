// Package rules holds the static category → trigger-substring table used
// for rule-based fault classification.
package rules

// Table maps fault categories to their trigger substrings. It is built
// once at startup and never mutated afterwards, so it is safe to share
// across workers without synchronization.
type Table struct {
	categories []string
	triggers   map[string][]string
}

// Categories returns the category names in the fixed enumeration order
// used everywhere scoring ties are broken: alphabetical. Callers must
// not mutate the returned slice.
func (t *Table) Categories() []string {
	return t.categories
}

// Triggers returns the trigger substrings for a category, or nil when
// the category is unknown. Callers must not mutate the returned slice.
func (t *Table) Triggers(category string) []string {
	return t.triggers[category]
}

// Default returns the built-in rule table. All triggers are lowercase;
// keyword extraction lowercases text before matching against them.
func Default() *Table {
	triggers := map[string][]string{
		"Network": {
			"connection", "timeout", "network", "socket",
			"refused", "unreachable", "dns", "port", "link",
		},
		"Resource": {
			"memory", "cpu", "disk", "allocation", "limit",
			"exceeded", "usage", "capacity", "resource",
		},
		"Security": {
			"authentication", "permission", "denied", "unauthorized",
			"access", "login", "credential", "security", "auth",
		},
		"Hardware": {
			"hardware", "device", "driver", "firmware", "physical",
		},
		"Application": {
			"error", "exception", "failed", "crash", "abort",
			"core", "fault", "fatal", "panic", "signal",
		},
	}

	return &Table{
		// Alphabetical. Ties between equal top scores resolve to the
		// first category in this order, so it must never change.
		categories: []string{"Application", "Hardware", "Network", "Resource", "Security"},
		triggers:   triggers,
	}
}
