package letters

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Stored templates are authored in a shorthand placeholder syntax. A pre-pass
// rewrites shorthand into text/template syntax before compilation:
//
//	{{field}}                  -> {{.field}}
//	{{#if field}}              -> {{if .field}}
//	{{#if field == "literal"}} -> {{if eq .field "literal"}}
//	{{else}}                   -> {{else}}
//	{{/if}}                    -> {{end}}
var (
	eqBlockPattern  = regexp.MustCompile(`\{\{\s*#if\s+([A-Za-z_][A-Za-z0-9_]*)\s*==\s*"([^"]*)"\s*\}\}`)
	ifBlockPattern  = regexp.MustCompile(`\{\{\s*#if\s+([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	endBlockPattern = regexp.MustCompile(`\{\{\s*/if\s*\}\}`)
	placeholderScan = regexp.MustCompile(`\{\{\s*\.?([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	bareFieldPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	templateFuncs = template.FuncMap{"eq": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) }}
	reservedWords = map[string]bool{"else": true, "end": true, "if": true}
)

// RewriteShorthand converts a shorthand template body into text/template
// source. It is exported so template preview and validation run the same
// rewrite as generation.
func RewriteShorthand(body string) string {
	out := eqBlockPattern.ReplaceAllString(body, `{{if eq .$1 "$2"}}`)
	out = ifBlockPattern.ReplaceAllString(out, `{{if .$1}}`)
	out = endBlockPattern.ReplaceAllString(out, `{{end}}`)
	out = bareFieldPattern.ReplaceAllStringFunc(out, func(match string) string {
		name := bareFieldPattern.FindStringSubmatch(match)[1]
		if reservedWords[name] {
			return "{{" + name + "}}"
		}
		return "{{." + name + "}}"
	})
	return out
}

// ScanPlaceholders returns the set of placeholder names referenced by a
// template body, shorthand or rewritten.
func ScanPlaceholders(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderScan.FindAllStringSubmatch(body, -1) {
		name := match[1]
		if reservedWords[name] || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// RenderBody substitutes the resolved context into a template body. A broken
// template never fails the request: the returned body is a visible error
// paragraph and the error is reported so the caller can record a warning.
func RenderBody(body string, context map[string]any) (string, error) {
	// Fill referenced placeholders absent from the context with empty strings
	// so missing optional data renders as nothing rather than "<no value>".
	filled := make(map[string]any, len(context))
	for k, v := range context {
		filled[k] = v
	}
	for _, name := range ScanPlaceholders(body) {
		if _, ok := filled[name]; !ok {
			filled[name] = ""
		}
	}

	source := RewriteShorthand(body)

	tmpl, err := template.New("letter").Funcs(templateFuncs).Parse(source)
	if err != nil {
		terr := &TemplateError{Message: "failed to parse template", Cause: err}
		return errorParagraph(terr), terr
	}

	var rendered strings.Builder
	if err := tmpl.Execute(&rendered, filled); err != nil {
		terr := &TemplateError{Message: "failed to execute template", Cause: err}
		return errorParagraph(terr), terr
	}

	return rendered.String(), nil
}

// errorParagraph produces the degraded-success body for a broken template.
func errorParagraph(err error) string {
	return "<p class=\"render-error\">Error rendering template: " + EscapeHTML(err.Error()) + "</p>"
}
