package patterns

import "regexp"

// Rule pairs a classification label with the pattern that selects it.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// Ruleset is an ordered rule list evaluated top to bottom; the first rule
// whose pattern matches wins. Rules carrying more specific cues must be
// listed before broader ones.
type Ruleset struct {
	rules    []Rule
	fallback string
}

// NewRuleset builds a ruleset that returns fallback when no rule matches.
func NewRuleset(fallback string, rules ...Rule) Ruleset {
	return Ruleset{rules: rules, fallback: fallback}
}

// Classify returns the label of the first matching rule, or the fallback.
func (rs Ruleset) Classify(message string) string {
	for _, r := range rs.rules {
		if r.Pattern.MatchString(message) {
			return r.Label
		}
	}
	return rs.fallback
}

// mustRule compiles expr case-insensitively and binds it to label.
func mustRule(label, expr string) Rule {
	return Rule{Label: label, Pattern: regexp.MustCompile(`(?i)` + expr)}
}
