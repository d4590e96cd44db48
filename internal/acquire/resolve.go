// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire selects a specification release and downloads its
// document into the work directory.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/internal/listing"
	"github.com/pdiddy/tsasn1/internal/version"
	"github.com/pdiddy/tsasn1/pkg/types"
)

var (
	// ErrNoReleases is returned when a listing holds no releases.
	ErrNoReleases = errors.New("no releases published")

	// ErrVersionNotPublished is returned when a requested version is not in
	// the listing.
	ErrVersionNotPublished = errors.New("version not published")
)

// ListingCache stores listings between runs. *catalog.Store implements it.
type ListingCache interface {
	SaveListing(ctx context.Context, spec string, versions types.VersionMap, fetchedAt time.Time) error
	Listing(ctx context.Context, spec string) (types.VersionMap, time.Time, error)
}

// Selection is the release chosen for a run.
type Selection struct {
	Spec    string
	Version string
	Token   string
	Date    string
	// Verified is set when the version was found in a listing.
	Verified bool
}

// Versions fetches and parses the listing for spec. When cache is non-nil a
// fresh listing is saved to it, and a transport that cannot list falls back
// to the cached copy.
func Versions(ctx context.Context, f archive.Fetcher, spec string, cache ListingCache, w io.Writer) (types.VersionMap, error) {
	lines, err := f.Listing(ctx, spec)
	if errors.Is(err, archive.ErrListingUnsupported) && cache != nil {
		versions, fetchedAt, cacheErr := cache.Listing(ctx, spec)
		if cacheErr == nil {
			fmt.Fprintf(w, "using cached listing for %s from %s\n", spec, fetchedAt.Format(time.DateOnly))
			return versions, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", spec, err)
	}

	versions, err := listing.Parse(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing listing for %s: %w", spec, err)
	}

	if cache != nil {
		if err := cache.SaveListing(ctx, spec, versions, time.Now()); err != nil {
			fmt.Fprintf(w, "warning: caching listing for %s failed: %v\n", spec, err)
		}
	}
	return versions, nil
}

// Resolve picks the release to fetch. An empty requested version selects
// the latest published one. A requested version is checked against the
// listing; if no listing can be obtained it is used unverified.
func Resolve(ctx context.Context, f archive.Fetcher, spec, requested string, cache ListingCache, w io.Writer) (Selection, error) {
	versions, listErr := Versions(ctx, f, spec, cache, w)

	if requested == "" {
		if listErr != nil {
			return Selection{}, fmt.Errorf("selecting latest version: %w", listErr)
		}
		v, rel, ok := listing.Latest(versions)
		if !ok {
			return Selection{}, fmt.Errorf("%s: %w", spec, ErrNoReleases)
		}
		fmt.Fprintf(w, "available versions:\n\n%s\n", listing.Format(versions))
		fmt.Fprintf(w, "using latest: %s\n", v)
		return Selection{Spec: spec, Version: v, Token: rel.Token, Date: rel.Date, Verified: true}, nil
	}

	token, err := version.Encode(requested)
	if err != nil {
		return Selection{}, err
	}
	canonical, err := version.Decode(token)
	if err != nil {
		return Selection{}, err
	}

	if listErr != nil {
		if !errors.Is(listErr, archive.ErrListingUnsupported) {
			return Selection{}, listErr
		}
		fmt.Fprintf(w, "warning: cannot verify %s %s: %v\n", spec, canonical, listErr)
		return Selection{Spec: spec, Version: canonical, Token: token}, nil
	}

	rel, ok := versions[canonical]
	if !ok {
		return Selection{}, fmt.Errorf("%s %s: %w", spec, canonical, ErrVersionNotPublished)
	}
	return Selection{Spec: spec, Version: canonical, Token: token, Date: rel.Date, Verified: true}, nil
}
