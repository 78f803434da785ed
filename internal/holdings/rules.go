// Package holdings classifies ETF holdings by category and contract month and
// orders them for publication.
package holdings

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/freightstat/internal/domain"
)

// Category labels. Size classes belong to BDRY, routes to BWET; cash, invesco
// and other apply to every fund.
const (
	LabelCapesize = "capesize"
	LabelPanamax  = "panamax"
	LabelSupramax = "supramax"
	LabelTD3C     = "td3c"
	LabelTD20     = "td20"
	LabelCash     = "cash"
	LabelInvesco  = "invesco"
	LabelOther    = "other"
)

// Category is a holding's semantic group. Lower priorities sort first.
type Category struct {
	Label    string
	Priority int
}

// Rule maps any of its keywords, found as a case-insensitive substring of a
// holding name, to a category label.
type Rule struct {
	Label    string
	Keywords []string
}

// Ruleset is the ordered classification policy for one fund.
// Rules are tested in order and the first match wins; a rule's priority is its
// 1-based position, and names matching nothing fall into "other" after all rules.
type Ruleset struct {
	Fund         domain.FundCode
	Rules        []Rule
	DatePatterns []*regexp.Regexp
}

// monthYearPattern matches a month abbreviation, optional trailing letters, an
// optional space or hyphen, then a 2-4 digit year: "Mar 26", "Feb-2027", "March2026".
// Unicode spaces such as NBSP count as a space.
var monthYearPattern = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\s\p{Zs}\-]?(\d{2,4})`)

// NewRuleset builds a ruleset with keywords lower-cased and blanks removed.
// Without explicit patterns the standard month-year pattern is used.
func NewRuleset(fund domain.FundCode, rules []Rule, patterns ...*regexp.Regexp) Ruleset {
	normalized := lo.Map(rules, func(r Rule, _ int) Rule {
		keywords := lo.Compact(lo.Map(r.Keywords, func(k string, _ int) string {
			return strings.ToLower(strings.TrimSpace(k))
		}))
		return Rule{Label: r.Label, Keywords: keywords}
	})
	if len(patterns) == 0 {
		patterns = []*regexp.Regexp{monthYearPattern}
	}
	return Ruleset{Fund: fund, Rules: normalized, DatePatterns: patterns}
}

// DefaultRulesets returns the classification policy of every known fund.
// A fresh map is built on each call so callers may modify their copy.
func DefaultRulesets() map[domain.FundCode]Ruleset {
	return map[domain.FundCode]Ruleset{
		domain.FundBDRY: NewRuleset(domain.FundBDRY, []Rule{
			{Label: LabelCapesize, Keywords: []string{"capesize"}},
			{Label: LabelPanamax, Keywords: []string{"panamax"}},
			{Label: LabelSupramax, Keywords: []string{"supramax"}},
			{Label: LabelCash, Keywords: []string{"cash"}},
			{Label: LabelInvesco, Keywords: []string{"invesco"}},
		}),
		domain.FundBWET: NewRuleset(domain.FundBWET, []Rule{
			{Label: LabelTD3C, Keywords: []string{"td3c", "middle east gulf to china"}},
			{Label: LabelTD20, Keywords: []string{"td20", "west africa to continent"}},
			{Label: LabelCash, Keywords: []string{"cash"}},
			{Label: LabelInvesco, Keywords: []string{"invesco"}},
		}),
	}
}

// Fallback returns the category for names matching no rule. It sorts last.
func (rs Ruleset) Fallback() Category {
	return Category{Label: LabelOther, Priority: len(rs.Rules) + 1}
}

// Categories lists every category of the ruleset in priority order, fallback included.
func (rs Ruleset) Categories() []Category {
	cats := lo.Map(rs.Rules, func(r Rule, i int) Category {
		return Category{Label: r.Label, Priority: i + 1}
	})
	return append(cats, rs.Fallback())
}
