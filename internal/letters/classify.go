// Package letters implements letter document generation: template lookup,
// placeholder resolution, layout composition, PDF rendering, and the overlay
// path for fixed PDF templates.
package letters

import "strings"

// GenericTitle is the classification result for an empty letter type.
const GenericTitle = "LETTER"

// titleRule maps letter-type substrings to a canonical document title.
type titleRule struct {
	substrings []string
	title      string
}

// titleRules is evaluated top to bottom; the first rule with a matching
// substring wins, so ordering is part of the contract.
var titleRules = []titleRule{
	{[]string{"offer"}, "OFFER LETTER"},
	{[]string{"interview", "call"}, "INTERVIEW CALL LETTER"},
	{[]string{"appointment"}, "APPOINTMENT LETTER"},
	{[]string{"rejection"}, "REJECTION LETTER"},
	{[]string{"round", "next"}, "NEXT ROUND INTERVIEW LETTER"},
	{[]string{"relieving"}, "RELIEVING LETTER"},
}

// ClassifyTitle maps a free-text letter type to its canonical document title.
// Matching is case-insensitive substring matching over titleRules; inputs that
// match no rule fall back to the uppercased raw type, and an empty input maps
// to GenericTitle. Every input therefore maps to exactly one title.
func ClassifyTitle(letterType string) string {
	trimmed := strings.TrimSpace(letterType)
	if trimmed == "" {
		return GenericTitle
	}

	lower := strings.ToLower(trimmed)
	for _, rule := range titleRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.title
			}
		}
	}

	return strings.ToUpper(trimmed)
}
