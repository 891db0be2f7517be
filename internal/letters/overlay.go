package letters

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/fetch"
	"github.com/jonathan/hrm-letters/internal/types"
)

// firstPage limits overlay stamps to the first page of the base PDF.
var firstPage = []string{"1"}

// Vertical offsets (points from the page top) for overlay drawing. The base
// PDF is a fixed design, so positions are fixed rather than flowed.
const (
	titleOffsetY     = -120.0
	underlineOffsetY = -134.0
	detailStartY     = -180.0
	detailLineStep   = 22.0
)

// Overlay draws branding, a classified title, and labeled detail fields onto
// an existing fixed PDF template. Asset failures are logged and skipped; only
// a failure to load or validate the base PDF aborts the call.
type Overlay struct {
	Fetcher *fetch.Options
}

// NewOverlay creates an Overlay with default fetch options.
func NewOverlay() *Overlay {
	return &Overlay{Fetcher: fetch.DefaultOptions()}
}

// Apply stamps the overlay onto the base PDF at basePath and returns the
// resulting document bytes.
func (o *Overlay) Apply(ctx context.Context, basePath string, req *types.GenerateRequest, branding *db.BrandingProfile) ([]byte, []string, error) {
	tmpDir, err := os.MkdirTemp("", "hrm-overlay-")
	if err != nil {
		return nil, nil, &OverlayError{Path: basePath, Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	work := filepath.Join(tmpDir, "letter.pdf")
	base, err := os.ReadFile(basePath)
	if err != nil {
		return nil, nil, &OverlayError{Path: basePath, Message: "failed to read base PDF", Cause: err}
	}
	if err := os.WriteFile(work, base, 0o644); err != nil {
		return nil, nil, &OverlayError{Path: basePath, Message: "failed to stage base PDF", Cause: err}
	}

	// A corrupt base is fatal; there is no sensible partial output.
	if err := api.ValidateFile(work, nil); err != nil {
		return nil, nil, &OverlayError{Path: basePath, Message: "base PDF failed validation", Cause: err}
	}

	var warnings []string
	warn := func(what string, err error) {
		log.Printf("[OVERLAY] %s failed: %v", what, err)
		warnings = append(warnings, fmt.Sprintf("%s failed: %v", what, err))
	}

	// Branding logo, scaled into a fixed box anchored top-left. Fetch and
	// stamp failures are cosmetic.
	if branding.LogoURL != "" {
		if err := o.stampLogo(ctx, work, tmpDir, branding.LogoURL); err != nil {
			warn("logo stamp", err)
		}
	}

	title := ClassifyTitle(req.LetterType)
	if err := stampText(work, title, fmt.Sprintf("font:Helvetica-Bold, points:18, scale:1 abs, pos:tc, off:0 %.0f, fillcol:#1a1a1a, rot:0", titleOffsetY)); err != nil {
		warn("title stamp", err)
	}
	if err := stampText(work, underlineFor(title), fmt.Sprintf("font:Helvetica, points:12, scale:1 abs, pos:tc, off:0 %.0f, fillcol:#1a1a1a, rot:0", underlineOffsetY)); err != nil {
		warn("title underline stamp", err)
	}

	for i, field := range detailFields(title, req) {
		desc := fmt.Sprintf("font:Helvetica, points:11, scale:1 abs, pos:tc, off:0 %.0f, fillcol:#333333, rot:0", detailStartY-float64(i)*detailLineStep)
		if err := stampText(work, field, desc); err != nil {
			warn("detail field stamp", err)
		}
	}

	groups := SplitContactLines(branding.ContactLines)
	phones, emails, _ := groups.Joined(contactJoinSeparator)
	if contact := joinNonEmpty(phones, emails); contact != "" {
		if err := stampText(work, contact, "font:Helvetica, points:9, scale:1 abs, pos:bc, off:0 40, fillcol:#444444, rot:0"); err != nil {
			warn("contact footer stamp", err)
		}
	}
	if branding.CompanyAddress != "" {
		if err := stampText(work, branding.CompanyAddress, "font:Helvetica, points:9, scale:1 abs, pos:bc, off:0 26, fillcol:#444444, rot:0"); err != nil {
			warn("address footer stamp", err)
		}
	}

	if req.HRName != "" {
		if err := stampText(work, req.HRName, "font:Helvetica, points:11, scale:1 abs, pos:br, off:-60 80, fillcol:#1a1a1a, rot:0"); err != nil {
			warn("signer stamp", err)
		}
	}

	out, err := os.ReadFile(work)
	if err != nil {
		return nil, warnings, &OverlayError{Path: basePath, Message: "failed to read stamped PDF", Cause: err}
	}
	return out, warnings, nil
}

// stampLogo fetches the logo by URL and stamps it top-left on the first page.
func (o *Overlay) stampLogo(ctx context.Context, work, tmpDir, logoURL string) error {
	asset, err := fetch.Image(ctx, logoURL, o.Fetcher)
	if err != nil {
		return err
	}

	logoPath := filepath.Join(tmpDir, "logo"+extensionFor(asset.ContentType))
	if err := os.WriteFile(logoPath, asset.Data, 0o644); err != nil {
		return err
	}

	wm, err := api.ImageWatermark(logoPath, "scale:0.12 rel, pos:tl, off:36 -30, rot:0", true, false, pdftypes.POINTS)
	if err != nil {
		return err
	}
	return api.AddWatermarksFile(work, work, firstPage, wm, nil)
}

// stampText applies one text stamp to the first page in place.
func stampText(work, text, desc string) error {
	wm, err := api.TextWatermark(text, desc, true, false, pdftypes.POINTS)
	if err != nil {
		return err
	}
	return api.AddWatermarksFile(work, work, firstPage, wm, nil)
}

// underlineFor renders an underline roughly matching the title width;
// Helvetica has no underline variant in the stamping API.
func underlineFor(title string) string {
	rule := make([]byte, 0, len(title)*2)
	for range title {
		rule = append(rule, '_', '_')
	}
	return string(rule)
}

// detailFields returns the labeled key-value lines for the classified letter
// type: offer letters show designation/CTC/joining date, interview letters
// show date/time/mode, and everything else shows name and letter type.
func detailFields(title string, req *types.GenerateRequest) []string {
	switch title {
	case "OFFER LETTER":
		return []string{
			"Designation: " + orNA(req.Role),
			"Annual CTC: " + orNA(req.Salary),
			"Date of Joining: " + orNA(req.JoiningDate),
		}
	case "INTERVIEW CALL LETTER", "NEXT ROUND INTERVIEW LETTER":
		return []string{
			"Date: " + orNA(req.InterviewDate),
			"Time: " + orNA(req.InterviewTime),
			"Mode: " + orNA(req.InterviewMode),
		}
	default:
		return []string{
			"Name: " + orNA(req.Name),
			"Letter Type: " + orNA(req.LetterType),
		}
	}
}

func orNA(value string) string {
	if value == "" {
		return RoleFallback
	}
	return value
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += contactJoinSeparator
		}
		out += p
	}
	return out
}

// extensionFor maps an image content type to a file extension for staging.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
