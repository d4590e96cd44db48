// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/tsasn1/internal/httputil"
	"github.com/pdiddy/tsasn1/pkg/types"
)

// DefaultHTTPBase is the HTTP mirror of the FTP archive.
const DefaultHTTPBase = "https://www.3gpp.org/ftp/"

// HTTPFetcher downloads releases from the HTTP mirror. The mirror serves
// HTML directory pages, so it cannot produce a listing.
type HTTPFetcher struct {
	client *http.Client
	cfg    types.ArchiveConfig
}

// NewHTTPFetcher returns a fetcher rooted at cfg.HTTPBase.
func NewHTTPFetcher(client *http.Client, cfg types.ArchiveConfig) *HTTPFetcher {
	return &HTTPFetcher{client: client, cfg: cfg}
}

// Listing always fails with ErrListingUnsupported.
func (h *HTTPFetcher) Listing(ctx context.Context, number string) ([]string, error) {
	return nil, ErrListingUnsupported
}

// URL returns the download URL of one release.
func (h *HTTPFetcher) URL(number, token string) string {
	base := h.cfg.HTTPBase
	if base == "" {
		base = DefaultHTTPBase
	}
	return strings.TrimSuffix(base, "/") + "/" + Path(number, token)
}

// Fetch downloads one release archive, retrying while the mirror throttles.
func (h *HTTPFetcher) Fetch(ctx context.Context, number, token string) ([]byte, error) {
	url := h.URL(number, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if h.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", h.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/zip")

	resp, err := httputil.DoWithRetry(ctx, h.client, req, h.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxArchiveSize)
	}
	return data, nil
}
