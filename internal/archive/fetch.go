// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/tsasn1/pkg/types"
)

// maxArchiveSize bounds a downloaded release archive.
const maxArchiveSize = 512 << 20

var (
	// ErrListingUnsupported is returned by transports that cannot list a
	// directory.
	ErrListingUnsupported = errors.New("transport cannot list archive directories")

	// ErrNotFound is returned when the archive has no such directory or file.
	ErrNotFound = errors.New("not found in archive")
)

// Fetcher retrieves listings and release archives.
type Fetcher interface {
	// Listing returns the raw directory listing lines for number.
	Listing(ctx context.Context, number string) ([]string, error)

	// Fetch returns the zip archive of one release.
	Fetch(ctx context.Context, number, token string) ([]byte, error)
}

// NewFetcher returns the fetcher for cfg.Transport.
func NewFetcher(cfg types.ArchiveConfig) (Fetcher, error) {
	switch cfg.Transport {
	case types.TransportFTP, "":
		return NewFTPFetcher(cfg), nil
	case types.TransportHTTP:
		return NewHTTPFetcher(&http.Client{Timeout: cfg.Timeout}, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported transport %q: use ftp or http", cfg.Transport)
	}
}
