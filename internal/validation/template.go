// Package validation checks authored letter templates against structural
// constraints before they are stored.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/jonathan/hrm-letters/internal/letters"
)

// Violation is one structural problem found in a template body.
type Violation struct {
	Kind    string `json:"kind"`
	Detail  string `json:"detail"`
	Snippet string `json:"snippet,omitempty"`
}

const (
	// KindUnbalanced marks a conditional block without a matching close.
	KindUnbalanced = "unbalanced_block"
	// KindUndeclared marks a placeholder missing from the declared variables.
	KindUndeclared = "undeclared_variable"
	// KindCompile marks a body that fails to compile after the shorthand
	// rewrite.
	KindCompile = "compile_error"
)

var openBlockPattern = regexp.MustCompile(`\{\{\s*#if\b`)
var closeBlockPattern = regexp.MustCompile(`\{\{\s*/if\s*\}\}`)

// CheckTemplate validates a template body. A template that renders (possibly
// degraded) is storable; violations are advisory for the author except
// KindCompile, which the handlers reject.
func CheckTemplate(body string, declared []string) []Violation {
	var violations []Violation

	opens := len(openBlockPattern.FindAllString(body, -1))
	closes := len(closeBlockPattern.FindAllString(body, -1))
	if opens != closes {
		violations = append(violations, Violation{
			Kind:   KindUnbalanced,
			Detail: fmt.Sprintf("%d conditional opens but %d closes", opens, closes),
		})
	}

	if len(declared) > 0 {
		declaredSet := make(map[string]bool, len(declared))
		for _, name := range declared {
			declaredSet[name] = true
		}
		for _, name := range letters.ScanPlaceholders(body) {
			if !declaredSet[name] && !builtinVariable(name) {
				violations = append(violations, Violation{
					Kind:    KindUndeclared,
					Detail:  fmt.Sprintf("placeholder %q is not declared", name),
					Snippet: "{{" + name + "}}",
				})
			}
		}
	}

	source := letters.RewriteShorthand(body)
	if _, err := template.New("lint").Funcs(template.FuncMap{"eq": func(a, b any) bool { return true }}).Parse(source); err != nil {
		violations = append(violations, Violation{
			Kind:   KindCompile,
			Detail: err.Error(),
		})
	}

	return violations
}

// Blocking reports whether any violation should reject the template outright.
func Blocking(violations []Violation) bool {
	for _, v := range violations {
		if v.Kind == KindCompile {
			return true
		}
	}
	return false
}

// builtinVariable reports whether a placeholder is provided by the resolver
// rather than by the author's declared variables.
func builtinVariable(name string) bool {
	switch name {
	case "candidate_name", "email", "designation", "salary",
		"joining_date", "last_working_day", "duration", "today",
		"interview_date", "interview_time", "interview_mode",
		"interview_location", "interview_link", "isOnline", "isOffline",
		"hr_name", "letter_title", "body",
		"company_name", "company_address", "logo_url", "signature_url",
		"letterhead_url", "contact_phones", "contact_emails", "contact_addresses":
		return true
	}
	return strings.HasPrefix(name, "custom_")
}
