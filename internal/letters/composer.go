package letters

import (
	"fmt"
	"strings"

	"github.com/jonathan/hrm-letters/internal/db"
)

// PageMode identifies which of the three mutually exclusive page layouts the
// composer selected.
type PageMode int

const (
	// ModeRaw passes a complete authored document through untouched.
	ModeRaw PageMode = iota
	// ModeLetterhead positions content inside the safe area over a full-bleed
	// letterhead background image.
	ModeLetterhead
	// ModePlain wraps content in fixed header and footer bands.
	ModePlain
)

// String returns the mode name for logging and API responses.
func (m PageMode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeLetterhead:
		return "letterhead"
	case ModePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// FooterBandHeightInches is the plain-mode footer band height. The document
// renderer reserves a matching bottom page margin so body text never runs
// under the footer.
const FooterBandHeightInches = 1.0

// headerBandHeightPx and footerBandHeightPx are the plain-mode band heights in
// CSS pixels (96 px per inch at Chrome's default print density).
const (
	headerBandHeightPx = 84
	footerBandHeightPx = 96
)

// fullDocumentMarkers identify markup that is already a complete page; such
// markup is used as-is with no header, footer, or signature injected.
var fullDocumentMarkers = []string{"<!doctype", "<html"}

// ComposedDocument is the composer output handed to the document renderer.
type ComposedDocument struct {
	HTML string
	Mode PageMode
	// BottomMarginInches is nonzero only in plain mode.
	BottomMarginInches float64
}

// Compose wraps a rendered letter body in the selected page layout. Mode
// selection priority: raw passthrough, then letterhead overlay when the
// branding letterhead is present and active, then plain.
func Compose(body, style string, branding *db.BrandingProfile, signerName string) ComposedDocument {
	if isFullDocument(body) {
		return ComposedDocument{HTML: body, Mode: ModeRaw}
	}

	groups := SplitContactLines(branding.ContactLines)
	signature := signatureBlock(branding, signerName)

	if branding.LetterheadURL != "" && branding.LetterheadActive {
		return ComposedDocument{
			HTML: letterheadPage(body, style, branding, groups, signature),
			Mode: ModeLetterhead,
		}
	}

	return ComposedDocument{
		HTML:               plainPage(body, style, branding, groups, signature),
		Mode:               ModePlain,
		BottomMarginInches: FooterBandHeightInches,
	}
}

// isFullDocument reports whether the markup is already a complete page.
func isFullDocument(body string) bool {
	head := strings.ToLower(strings.TrimSpace(body))
	for _, marker := range fullDocumentMarkers {
		if strings.HasPrefix(head, marker) {
			return true
		}
	}
	return false
}

// signatureBlock renders the closing block: "Sincerely,", the signature image
// or a fixed-height spacer, then the signer and company names.
func signatureBlock(branding *db.BrandingProfile, signerName string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="signature-block"><p>Sincerely,</p>`)
	if branding.SignatureURL != "" {
		fmt.Fprintf(&sb, `<img class="signature-image" src="%s" alt="signature"/>`, branding.SignatureURL)
	} else {
		sb.WriteString(`<div class="signature-spacer"></div>`)
	}
	if signerName != "" {
		fmt.Fprintf(&sb, `<p class="signature-name">%s</p>`, EscapeHTML(signerName))
	}
	fmt.Fprintf(&sb, `<p class="signature-company">%s</p></div>`, EscapeHTML(branding.CompanyName))
	return sb.String()
}

// contactFooterRows renders grouped contact lines as color-coded rows, one row
// per non-empty group.
func contactFooterRows(groups ContactGroups) string {
	phones, emails, addresses := groups.Joined(contactJoinSeparator)
	var sb strings.Builder
	if phones != "" {
		fmt.Fprintf(&sb, `<div class="contact-row contact-phone">%s</div>`, EscapeHTML(phones))
	}
	if emails != "" {
		fmt.Fprintf(&sb, `<div class="contact-row contact-email">%s</div>`, EscapeHTML(emails))
	}
	if addresses != "" {
		fmt.Fprintf(&sb, `<div class="contact-row contact-address">%s</div>`, EscapeHTML(addresses))
	}
	return sb.String()
}

// letterheadPage positions the body and signature inside the branding safe
// area over the full-bleed letterhead image, with the contact footer pinned
// near the page bottom.
func letterheadPage(body, style string, branding *db.BrandingProfile, groups ContactGroups, signature string) string {
	safe := branding.SafeArea
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<style>
@page { margin: 0; }
html, body { margin: 0; padding: 0; }
.letterhead-background { position: fixed; top: 0; left: 0; width: 100%%; height: 100%%; z-index: -1; }
.letterhead-background img { width: 100%%; height: 100%%; }
.safe-content { position: absolute; left: %.0fpt; top: %.0fpt; width: %.0fpt; min-height: %.0fpt; }
.signature-block { margin-top: 28px; }
.signature-image { height: 48px; }
.signature-spacer { height: 48px; }
.signature-name { font-weight: bold; margin: 2px 0; }
.signature-company { margin: 2px 0; }
.contact-footer { position: fixed; bottom: 18pt; left: 0; width: 100%%; text-align: center; font-size: 10px; font-family: Helvetica, Arial, sans-serif; }
.contact-row { margin: 1px 0; }
.contact-phone { color: #2353a4; }
.contact-email { color: #1c7a4b; }
.contact-address { color: #555; }
%s
</style>
</head>
<body>
<div class="letterhead-background"><img src="%s" alt=""/></div>
<div class="safe-content">
%s
%s
</div>
<div class="contact-footer">%s</div>
</body>
</html>`, safe.X, safe.Y, safe.Width, safe.Height, style, branding.LetterheadURL, body, signature, contactFooterRows(groups))
}

// plainPage wraps the body in fixed header and footer bands. The body is
// padded so it cannot collide with either band.
func plainPage(body, style string, branding *db.BrandingProfile, groups ContactGroups, signature string) string {
	var logo string
	if branding.LogoURL != "" {
		logo = fmt.Sprintf(`<img class="header-logo" src="%s" alt="logo"/>`, branding.LogoURL)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<style>
@page { margin: 0; }
html, body { margin: 0; padding: 0; }
.page-header { height: %dpx; display: flex; align-items: center; gap: 16px; padding: 0 48px; border-bottom: 2px solid #2353a4; }
.header-logo { max-height: 56px; }
.header-company { font-family: Helvetica, Arial, sans-serif; font-size: 20px; font-weight: bold; color: #2353a4; }
.page-content { padding: 24px 48px %dpx 48px; }
.page-footer { position: fixed; bottom: 0; left: 0; width: 100%%; height: %dpx; border-top: 1px solid #ccc; text-align: center; font-size: 10px; font-family: Helvetica, Arial, sans-serif; padding-top: 8px; background: #fafafa; }
.signature-block { margin-top: 28px; }
.signature-image { height: 48px; }
.signature-spacer { height: 48px; }
.signature-name { font-weight: bold; margin: 2px 0; }
.signature-company { margin: 2px 0; }
.contact-row { margin: 1px 0; }
.contact-phone { color: #2353a4; }
.contact-email { color: #1c7a4b; }
.contact-address { color: #555; }
%s
</style>
</head>
<body>
<div class="page-header">%s<span class="header-company">%s</span></div>
<div class="page-content">
%s
%s
</div>
<div class="page-footer">%s</div>
</body>
</html>`, headerBandHeightPx, footerBandHeightPx+24, footerBandHeightPx, style, logo, EscapeHTML(branding.CompanyName), body, signature, contactFooterRows(groups))
}
