package letters

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/fetch"
	"github.com/jonathan/hrm-letters/internal/types"
)

// Store is the persistence surface generation reads from and appends to.
type Store interface {
	GetOrCreateBranding(ctx context.Context) (*db.BrandingProfile, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*db.LetterTemplate, error)
	AppendGeneratedLetter(ctx context.Context, employeeID uuid.UUID, name, letterType, fileURL string) (*db.GeneratedLetter, error)
}

// ArtifactStore persists generated PDFs and returns a stable file URL.
type ArtifactStore interface {
	SavePDF(name string, data []byte) (string, error)
}

// Result is a generation outcome. A degraded render (broken template, missing
// cosmetic asset) is still a Result with Warnings, not an error; errors are
// reserved for outcomes with no document at all.
type Result struct {
	PDF      []byte
	HTML     string
	Mode     string
	Subject  string
	Title    string
	FileURL  string
	Warnings []string
}

// Degraded reports whether the document was produced with substitutions or
// skipped assets.
func (r *Result) Degraded() bool {
	return len(r.Warnings) > 0
}

// Service orchestrates letter generation end to end.
type Service struct {
	store     Store
	artifacts ArtifactStore
	renderer  *PDFRenderer
	overlay   *Overlay
	fetcher   *fetch.Options
}

// NewService wires a generation service. artifacts may be nil; generated PDFs
// are then returned to the caller without being persisted.
func NewService(store Store, artifacts ArtifactStore) *Service {
	return &Service{
		store:     store,
		artifacts: artifacts,
		renderer:  NewPDFRenderer(),
		overlay:   NewOverlay(),
		fetcher:   fetch.DefaultOptions(),
	}
}

// Generate produces the letter PDF for a request.
func (s *Service) Generate(ctx context.Context, req *types.GenerateRequest) (*Result, error) {
	result, tmpl, branding, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	// Fixed-PDF templates bypass markup rendering entirely.
	if tmpl != nil && tmpl.FixedPDF {
		if err := s.fixedPDF(ctx, req, tmpl, branding, result); err != nil {
			return nil, err
		}
		return s.finish(ctx, req, result)
	}

	pdf, err := s.renderer.Render(ctx, ComposedDocument{
		HTML:               result.HTML,
		Mode:               parseMode(result.Mode),
		BottomMarginInches: bottomMarginFor(result.Mode),
	})
	if err != nil {
		return nil, err
	}
	result.PDF = pdf

	return s.finish(ctx, req, result)
}

// Preview runs resolution, rendering, and composition but skips the PDF
// renderer, returning the composed markup for UI preview.
func (s *Service) Preview(ctx context.Context, req *types.GenerateRequest) (*Result, error) {
	result, tmpl, _, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if tmpl != nil && tmpl.FixedPDF {
		return nil, fmt.Errorf("fixed PDF template %s has no markup to preview", tmpl.ID)
	}
	return result, nil
}

// prepare resolves the template, builds the context, renders the body, and
// composes the page. For fixed-PDF templates it returns early with the
// template so the caller can take the overlay path.
func (s *Service) prepare(ctx context.Context, req *types.GenerateRequest) (*Result, *db.LetterTemplate, *db.BrandingProfile, error) {
	branding, err := s.store.GetOrCreateBranding(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load branding profile: %w", err)
	}

	result := &Result{}

	var markup, style, subject string
	var tmpl *db.LetterTemplate

	switch {
	case req.TemplateID != "":
		tmpl = s.lookupTemplate(ctx, req.TemplateID, result)
		if tmpl != nil {
			if tmpl.FixedPDF {
				result.Title = ClassifyTitle(req.LetterType)
				return result, tmpl, branding, nil
			}
			// Stored templates carry no stylesheet; the shared base style
			// keeps tables and error paragraphs legible.
			markup, style, subject = tmpl.Body, baseStyle, tmpl.Subject
		} else {
			d := LookupDesign("")
			markup, style, subject = d.Markup, d.Style, d.Subject
		}
	case req.DesignID != "":
		d := LookupDesign(req.DesignID)
		markup, style, subject = d.Markup, d.Style, d.Subject
	default:
		d := DesignByCategory(req.LetterType)
		markup, style, subject = d.Markup, d.Style, d.Subject
	}

	vars := BuildContext(req, branding)
	if req.BodyContent != "" {
		vars["body"] = paragraphs(req.BodyContent)
	}

	// Inline branding images so the headless browser needs no network access.
	composerBranding := *branding
	s.inlineAssets(ctx, &composerBranding, result)
	vars["logo_url"] = composerBranding.LogoURL
	vars["signature_url"] = composerBranding.SignatureURL
	vars["letterhead_url"] = composerBranding.LetterheadURL

	body, renderErr := RenderBody(markup, vars)
	if renderErr != nil {
		result.Warnings = append(result.Warnings, renderErr.Error())
	}

	doc := Compose(body, style, &composerBranding, req.HRName)

	subjectLine, subjErr := RenderBody(subject, vars)
	if subjErr != nil {
		subjectLine = subject
	}

	result.HTML = doc.HTML
	result.Mode = doc.Mode.String()
	result.Subject = subjectLine
	result.Title = ClassifyTitle(req.LetterType)
	return result, tmpl, branding, nil
}

// fixedPDF handles a fixed-PDF template: the stored file is returned untouched
// unless the request asks for overlay decoration.
func (s *Service) fixedPDF(ctx context.Context, req *types.GenerateRequest, tmpl *db.LetterTemplate, branding *db.BrandingProfile, result *Result) error {
	if tmpl.FilePath == "" {
		return &OverlayError{Path: "", Message: "fixed template has no stored file"}
	}

	if !req.Decorate {
		data, err := os.ReadFile(tmpl.FilePath)
		if err != nil {
			return &OverlayError{Path: tmpl.FilePath, Message: "failed to read stored PDF", Cause: err}
		}
		result.PDF = data
		result.Mode = "fixed"
		result.Subject = tmpl.Subject
		return nil
	}

	pdf, warnings, err := s.overlay.Apply(ctx, tmpl.FilePath, req, branding)
	if err != nil {
		return err
	}
	result.PDF = pdf
	result.Mode = "overlay"
	result.Subject = tmpl.Subject
	result.Warnings = append(result.Warnings, warnings...)
	return nil
}

// finish persists the PDF and appends the employee letter record.
func (s *Service) finish(ctx context.Context, req *types.GenerateRequest, result *Result) (*Result, error) {
	if s.artifacts != nil && len(result.PDF) > 0 {
		url, err := s.artifacts.SavePDF(artifactName(req), result.PDF)
		if err != nil {
			return nil, fmt.Errorf("failed to store generated letter: %w", err)
		}
		result.FileURL = url
	}

	if req.EmployeeID != "" {
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			result.Warnings = append(result.Warnings, "invalid employee id; letter record not appended")
			return result, nil
		}
		if _, err := s.store.AppendGeneratedLetter(ctx, employeeID, artifactName(req), result.Title, result.FileURL); err != nil {
			return nil, fmt.Errorf("failed to record generated letter: %w", err)
		}
	}

	return result, nil
}

// lookupTemplate loads a stored template, degrading to the catalog default on
// a bad id or missing row.
func (s *Service) lookupTemplate(ctx context.Context, id string, result *Result) *db.LetterTemplate {
	templateID, err := uuid.Parse(id)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid template id %q; using default design", id))
		return nil
	}
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil || tmpl == nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("template %s not found; using default design", id))
		return nil
	}
	return tmpl
}

// inlineAssets fetches branding images concurrently and swaps their URLs for
// data URIs. A failed fetch keeps the original URL and records a warning.
func (s *Service) inlineAssets(ctx context.Context, branding *db.BrandingProfile, result *Result) {
	targets := []struct {
		name string
		url  *string
	}{
		{"logo", &branding.LogoURL},
		{"signature", &branding.SignatureURL},
		{"letterhead", &branding.LetterheadURL},
	}

	g, gctx := errgroup.WithContext(ctx)
	warnings := make([]string, len(targets))

	for i, t := range targets {
		if *t.url == "" || strings.HasPrefix(*t.url, "data:") {
			continue
		}
		g.Go(func() error {
			asset, err := fetch.Image(gctx, *t.url, s.fetcher)
			if err != nil {
				log.Printf("[LETTERS] %s fetch failed: %v", t.name, err)
				warnings[i] = fmt.Sprintf("%s image could not be fetched", t.name)
				return nil
			}
			*t.url = asset.DataURI()
			return nil
		})
	}
	_ = g.Wait()

	for _, w := range warnings {
		if w != "" {
			result.Warnings = append(result.Warnings, w)
		}
	}
}

// paragraphs converts free-text body content into escaped paragraph markup.
func paragraphs(text string) string {
	var sb strings.Builder
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(EscapeHTML(block), "\n", "<br/>"))
		sb.WriteString("</p>\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func artifactName(req *types.GenerateRequest) string {
	title := strings.ToLower(strings.ReplaceAll(ClassifyTitle(req.LetterType), " ", "-"))
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "-"))
	if name == "" {
		return title
	}
	return name + "-" + title
}

func parseMode(mode string) PageMode {
	switch mode {
	case "raw":
		return ModeRaw
	case "letterhead":
		return ModeLetterhead
	default:
		return ModePlain
	}
}

func bottomMarginFor(mode string) float64 {
	if mode == "plain" {
		return FooterBandHeightInches
	}
	return 0
}
