package holdings

import (
	"strings"

	"github.com/samber/lo"
)

// Categorize assigns a holding name to the first matching rule of rs.
// It is total: empty or unrecognized names return rs.Fallback().
func Categorize(name string, rs Ruleset) Category {
	lower := strings.ToLower(name)
	for i, rule := range rs.Rules {
		if lo.SomeBy(rule.Keywords, func(k string) bool { return strings.Contains(lower, k) }) {
			return Category{Label: rule.Label, Priority: i + 1}
		}
	}
	return rs.Fallback()
}
