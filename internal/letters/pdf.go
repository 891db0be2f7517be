package letters

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// US business-letter page size in inches.
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11.0
)

// DefaultRenderTimeout bounds a single headless-browser render.
const DefaultRenderTimeout = 60 * time.Second

// PDFRenderer converts composed markup to a paginated PDF using a headless
// Chrome instance. One browser is launched and torn down per call; there is no
// instance reuse.
type PDFRenderer struct {
	// ChromePath overrides the browser executable; empty uses the default
	// lookup (also reads CHROME_PATH when unset).
	ChromePath string
	Timeout    time.Duration
}

// NewPDFRenderer creates a renderer with the default timeout. CHROME_PATH is
// honored when set.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		ChromePath: os.Getenv("CHROME_PATH"),
		Timeout:    DefaultRenderTimeout,
	}
}

// Render converts a composed document to PDF bytes. Page margins are zero;
// plain mode reserves a bottom margin matching the footer band so body text
// never overlaps the footer. Renderer failures propagate to the caller.
func (r *PDFRenderer) Render(ctx context.Context, doc ComposedDocument) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	// Serve the markup from a temp file so relative print layout matches the
	// browser's file origin rules.
	tmpDir, err := os.MkdirTemp("", "hrm-letter-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "letter.html")
	if err := os.WriteFile(htmlPath, []byte(doc.HTML), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write markup", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(doc.BottomMarginInches).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless browser render failed", Cause: err}
	}

	return pdf, nil
}
