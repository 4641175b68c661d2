package routing

import (
	"path"

	"github.com/mosaicgen/mosaic/internal/config"
)

// Rule routes one category to a directory when its presence predicate holds.
// Rules are evaluated top to bottom; the first match wins.
type Rule struct {
	// Category this rule applies to.
	Category string
	// WhenPresent lists generator ids that must all be present.
	WhenPresent []string
	// WhenAbsent lists generator ids none of which may be present.
	WhenAbsent []string
	// Dir is the target directory relative to the project root.
	Dir string
}

// matches reports whether the rule applies for the given category and
// presence set.
func (r Rule) matches(category string, p Presence) bool {
	if r.Category != category {
		return false
	}
	for _, id := range r.WhenPresent {
		if !p.Has(id) {
			return false
		}
	}
	for _, id := range r.WhenAbsent {
		if p.Has(id) {
			return false
		}
	}
	return true
}

// Table is an ordered path routing table. It is immutable after construction
// and safe for concurrent use.
type Table struct {
	rules []Rule
}

// NewTable builds a routing table from the given rules, in order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// BuildTable prepends user-declared routes to the built-in defaults. User
// rules therefore always win over defaults for the categories they name.
func BuildTable(userRoutes []*config.Route) *Table {
	rules := make([]Rule, 0, len(userRoutes)+len(defaultRules))
	for _, r := range userRoutes {
		rules = append(rules, Rule{
			Category:    r.Category,
			WhenPresent: r.WhenPresent,
			WhenAbsent:  r.WhenAbsent,
			Dir:         r.Dir,
		})
	}
	rules = append(rules, defaultRules...)
	return &Table{rules: rules}
}

// defaultRules is the built-in routing table. The scaffold generator is a
// marker: when present, UI-facing output nests under its application source
// tree instead of sitting at the project root.
var defaultRules = []Rule{
	{Category: "ui", WhenPresent: []string{"scaffold"}, Dir: "app/ui"},
	{Category: "ui", Dir: "ui"},
	{Category: "contracts", Dir: "contracts"},
	{Category: "scripts", Dir: "scripts"},
	{Category: "docs", Dir: "docs"},
}

// Resolve maps a logical category and generator-relative path to the final
// path in the virtual file tree. It is referentially transparent: the result
// depends only on the three arguments, never on call order or run history.
func (t *Table) Resolve(category, relPath string, p Presence) string {
	cleaned := path.Clean("/" + relPath)
	if category == "" {
		return cleaned
	}
	for _, rule := range t.rules {
		if rule.matches(category, p) {
			return path.Clean("/" + path.Join(rule.Dir, cleaned))
		}
	}
	// Unrouted categories fall back to a top-level directory named after
	// the category itself.
	return path.Clean("/" + path.Join(category, cleaned))
}
