// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/hrm-letters/internal/letters"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDesign outputs a summary of the design picked for a request.
func (p *Printer) PrintDesign(design *letters.Design, title string) {
	if design == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Design:   %s\n", design.ID))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", design.Name))
	sb.WriteString(fmt.Sprintf("Category: %s\n", design.Category))
	sb.WriteString(fmt.Sprintf("Title:    %s", title))

	p.printBox("SELECTED DESIGN", sb.String())
}

// PrintContext outputs the resolved placeholder values, sorted by key.
// Empty values are skipped so the box stays readable.
func (p *Printer) PrintContext(vars map[string]any) {
	if len(vars) == 0 {
		return
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		if s, ok := vars[k].(string); ok && s == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return
	}

	var sb strings.Builder
	count := 0
	for _, k := range keys {
		if count == maxItemsToShow*2 {
			sb.WriteString(fmt.Sprintf("... and %d more", len(keys)-count))
			break
		}
		val := fmt.Sprint(vars[k])
		if len(val) > 34 {
			val = val[:31] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-18s %s\n", k+":", val))
		count++
	}

	p.printBox("RESOLVED PLACEHOLDERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComposition outputs the page mode and margins chosen by the composer.
func (p *Printer) PrintComposition(doc *letters.ComposedDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page mode:     %s\n", doc.Mode))
	sb.WriteString(fmt.Sprintf("Bottom margin: %.2f in\n", doc.BottomMarginInches))
	sb.WriteString(fmt.Sprintf("HTML size:     %d bytes", len(doc.HTML)))

	p.printBox("COMPOSED DOCUMENT", sb.String())
}

// PrintResult outputs the final generation result, including any warnings
// recorded on the degraded path.
func (p *Printer) PrintResult(res *letters.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject:  %s\n", res.Subject))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", res.Mode))
	sb.WriteString(fmt.Sprintf("PDF size: %d bytes\n", len(res.PDF)))
	if res.FileURL != "" {
		sb.WriteString(fmt.Sprintf("Saved to: %s\n", res.FileURL))
	}

	if res.Degraded() {
		sb.WriteString("\nWarnings:\n")
		count := min(len(res.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			w := res.Warnings[i]
			if len(w) > 50 {
				w = w[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", w))
		}
		if len(res.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(res.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("GENERATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
