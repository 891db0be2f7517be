package db

import (
	"time"

	"github.com/google/uuid"
)

// Rect is a rectangle in PDF points, origin at the top-left of the page.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BrandingProfile is the singleton company branding record. The safe content
// area is derived from page size and margins; it is recomputed on every layout
// update and never written directly.
type BrandingProfile struct {
	ID             uuid.UUID `json:"id"`
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	// ContactLines is a newline-separated block of phone/email/address lines.
	ContactLines string `json:"contact_lines"`

	LogoURL          string `json:"logo_url"`
	SignatureURL     string `json:"signature_url"`
	LetterheadURL    string `json:"letterhead_url"`
	LetterheadActive bool   `json:"letterhead_active"`

	// Page geometry in PDF points.
	PageWidth    float64 `json:"page_width"`
	PageHeight   float64 `json:"page_height"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
	MarginRight  float64 `json:"margin_right"`
	SafeArea     Rect    `json:"safe_area"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeSafeArea derives the safe content rectangle from the current page
// size and margins.
func (b *BrandingProfile) ComputeSafeArea() Rect {
	return Rect{
		X:      b.MarginLeft,
		Y:      b.MarginTop,
		Width:  b.PageWidth - b.MarginLeft - b.MarginRight,
		Height: b.PageHeight - b.MarginTop - b.MarginBottom,
	}
}

// LetterTemplate is a stored letter template. A fixed-PDF template carries a
// file path and no meaningful body; a markup template carries a body and no
// file path.
type LetterTemplate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Variables []string  `json:"variables"`
	FixedPDF  bool      `json:"fixed_pdf"`
	FilePath  string    `json:"file_path,omitempty"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Employee is a minimal employee record owning generated-letter history.
type Employee struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	JoiningDate *time.Time `json:"joining_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GeneratedLetter is one append-only letter record attached to an employee.
// Rows are never updated or deleted individually; they are removed only when
// the parent employee is deleted.
type GeneratedLetter struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	FileURL    string    `json:"file_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is an authenticated HR user. Admins may edit locked templates.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
