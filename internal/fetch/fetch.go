// Package fetch retrieves branding assets (logo, signature, letterhead
// images) over HTTP with bounded timeouts. This centralizes the network
// fetching used by letter generation and the overlay path.
package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout for asset fetches.
const DefaultTimeout = 15 * time.Second

// MaxAssetBytes caps a single asset download. Branding images are small;
// anything larger is likely a misconfigured URL.
const MaxAssetBytes = 10 << 20

// Asset holds a fetched branding asset.
type Asset struct {
	URL         string
	ContentType string
	Data        []byte
}

// Error represents an error during asset fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout time.Duration
}

// DefaultOptions returns sensible defaults for asset fetching.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Image retrieves an image asset from a URL.
func Image(ctx context.Context, urlStr string, opts *Options) (*Asset, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read body", Cause: err}
	}
	if len(data) > MaxAssetBytes {
		return nil, &Error{URL: urlStr, Message: "asset exceeds size limit"}
	}

	return &Asset{
		URL:         urlStr,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// DataURI encodes the asset as a data: URI so the headless browser can embed
// it without a second network round trip.
func (a *Asset) DataURI() string {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}
