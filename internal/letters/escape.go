package letters

import "strings"

// EscapeHTML escapes HTML-significant characters in text so caller-supplied
// values cannot inject markup into the composed document.
// Special characters: & < > " '
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&#34;")
		case '\'':
			result.WriteString("&#39;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// rawContextKeys are context fields whose values are inserted into documents
// without escaping: authored markup and image references rendered inside
// attributes the service itself controls.
var rawContextKeys = map[string]bool{
	"body":           true,
	"logo_url":       true,
	"signature_url":  true,
	"letterhead_url": true,
}

// EscapeContext HTML-escapes every string value in a resolved context except
// the raw allowlist. Non-string values (mode flags) pass through untouched.
func EscapeContext(context map[string]any) map[string]any {
	escaped := make(map[string]any, len(context))
	for key, value := range context {
		if s, ok := value.(string); ok && !rawContextKeys[key] {
			escaped[key] = EscapeHTML(s)
			continue
		}
		escaped[key] = value
	}
	return escaped
}
