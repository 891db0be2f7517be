package letters

import (
	"regexp"
	"strings"
)

// ContactGroups holds branding contact lines split by kind. Every input line
// lands in exactly one group.
type ContactGroups struct {
	Phones    []string
	Emails    []string
	Addresses []string
}

// phonePattern matches lines that look like phone numbers: an optional "+" or
// "00" prefix followed by digits with common separators.
var phonePattern = regexp.MustCompile(`^(\+|00)?[0-9][0-9\s\-()./]{4,}$`)

// contactRule classifies a single contact line. Rules are evaluated in order;
// the first matching rule assigns the group.
type contactRule struct {
	match  func(line string) bool
	assign func(g *ContactGroups, line string)
}

var contactRules = []contactRule{
	{
		match:  func(line string) bool { return phonePattern.MatchString(line) },
		assign: func(g *ContactGroups, line string) { g.Phones = append(g.Phones, line) },
	},
	{
		match:  func(line string) bool { return strings.Contains(line, "@") },
		assign: func(g *ContactGroups, line string) { g.Emails = append(g.Emails, line) },
	},
	{
		// Everything else is treated as an address line.
		match:  func(string) bool { return true },
		assign: func(g *ContactGroups, line string) { g.Addresses = append(g.Addresses, line) },
	},
}

// SplitContactLines classifies each non-blank line of a contact block into
// phone, email, or address groups.
func SplitContactLines(block string) ContactGroups {
	var groups ContactGroups
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, rule := range contactRules {
			if rule.match(line) {
				rule.assign(&groups, line)
				break
			}
		}
	}
	return groups
}

// Joined returns each group collapsed to a single line for compact footer
// rendering.
func (g ContactGroups) Joined(sep string) (phones, emails, addresses string) {
	return strings.Join(g.Phones, sep), strings.Join(g.Emails, sep), strings.Join(g.Addresses, sep)
}

// Empty reports whether no contact line was classified into any group.
func (g ContactGroups) Empty() bool {
	return len(g.Phones) == 0 && len(g.Emails) == 0 && len(g.Addresses) == 0
}
