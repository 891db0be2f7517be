// Package types provides type definitions for structured data used throughout the HRM letter service.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DateLayout is the wire format for all date fields in letter requests.
const DateLayout = "2006-01-02"

// GenerateRequest is the payload for letter generation. All date fields are
// plain strings so a missing or malformed date degrades to an empty rendered
// value instead of failing the request.
type GenerateRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`

	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	JoiningDate    string `json:"joining_date,omitempty"`
	LastWorkingDay string `json:"last_working_day,omitempty"`
	Salary         string `json:"salary,omitempty"`

	InterviewDate     string `json:"interview_date,omitempty"`
	InterviewTime     string `json:"interview_time,omitempty"`
	InterviewMode     string `json:"interview_mode,omitempty"`
	InterviewLocation string `json:"interview_location,omitempty"`
	InterviewLink     string `json:"interview_link,omitempty"`

	HRName string `json:"hr_name,omitempty"`

	// BodyContent overrides the stored template body with free text.
	BodyContent string `json:"body_content,omitempty"`

	// Exactly one of DesignID / TemplateID selects the template; LetterType is
	// used for classification and as a catalog fallback when neither is set.
	DesignID   string `json:"design_id,omitempty"`
	TemplateID string `json:"template_id,omitempty"`
	LetterType string `json:"letter_type,omitempty"`

	// Decorate asks the fixed-PDF path to draw branding and detail fields onto
	// the stored file instead of returning it untouched.
	Decorate bool `json:"decorate,omitempty"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ParseDate parses a request date field. The zero time is returned for empty
// or malformed input; callers render the zero time as an empty string.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateTemplateRequest is the payload for authoring a stored letter template.
type CreateTemplateRequest struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Category  string   `json:"category" validate:"required,min=1"`
	Subject   string   `json:"subject,omitempty"`
	Body      string   `json:"body,omitempty"`
	Variables []string `json:"variables,omitempty"`
	Locked    bool     `json:"locked,omitempty"`
}

// Validate validates the CreateTemplateRequest using the validator.
func (r *CreateTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateBrandingRequest is the payload for editing the branding profile.
type UpdateBrandingRequest struct {
	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	ContactLines   string `json:"contact_lines,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	SignatureURL   string `json:"signature_url,omitempty"`
	LetterheadURL  string `json:"letterhead_url,omitempty"`
	LetterheadOn   *bool  `json:"letterhead_active,omitempty"`
}

// UpdateLayoutRequest updates page size and content margins. The safe content
// area is derived server-side; it is never accepted from the client.
type UpdateLayoutRequest struct {
	PageWidth    float64 `json:"page_width" validate:"required,gt=0"`
	PageHeight   float64 `json:"page_height" validate:"required,gt=0"`
	MarginTop    float64 `json:"margin_top" validate:"gte=0"`
	MarginBottom float64 `json:"margin_bottom" validate:"gte=0"`
	MarginLeft   float64 `json:"margin_left" validate:"gte=0"`
	MarginRight  float64 `json:"margin_right" validate:"gte=0"`
}

// Validate validates the UpdateLayoutRequest using the validator.
func (r *UpdateLayoutRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CreateEmployeeRequest is the payload for creating an employee record.
type CreateEmployeeRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role,omitempty"`
	JoiningDate string `json:"joining_date,omitempty"`
}

// Validate validates the CreateEmployeeRequest using the validator.
func (r *CreateEmployeeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GeneratedLetterView is the API shape of one append-only letter record.
type GeneratedLetterView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}
