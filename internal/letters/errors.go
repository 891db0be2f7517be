package letters

import "fmt"

// TemplateError represents an error compiling or executing a letter template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a document rendering failure. Unlike template errors,
// render errors are infrastructure failures and propagate to the caller.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// OverlayError represents a fatal overlay failure: the base PDF could not be
// loaded or validated. Per-asset stamping failures are warnings, not errors.
type OverlayError struct {
	Path    string
	Message string
	Cause   error
}

func (e *OverlayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("overlay error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("overlay error: %s (%s)", e.Message, e.Path)
}

func (e *OverlayError) Unwrap() error {
	return e.Cause
}
