// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing turns an archive directory listing into a version map.
//
// Lines are fixed-width, as printed by the archive's FTP server:
//
//	06-22-18  05:24AM                34731 36411-f00.zip
//
// The first 8 characters are the publication date and the 3 characters
// before the 4-character extension are the encoded version.
package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/tsasn1/internal/version"
	"github.com/pdiddy/tsasn1/pkg/types"
)

const (
	dateWidth   = 8
	suffixWidth = 4 // ".zip"
	minWidth    = dateWidth + version.Components
)

// ErrMalformedListingLine is returned when a line is too short or its token
// slice does not decode.
var ErrMalformedListingLine = errors.New("malformed listing line")

// Parse builds a VersionMap from listing lines. A later line for the same
// version replaces an earlier one. The first malformed line rejects the whole
// listing; blank lines are ignored.
func Parse(lines []string) (types.VersionMap, error) {
	versions := make(types.VersionMap, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, rel, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, err)
		}
		versions[v] = rel
	}
	return versions, nil
}

func parseLine(line string) (string, types.Release, error) {
	if len(line) < minWidth+suffixWidth {
		return "", types.Release{}, ErrMalformedListingLine
	}
	end := len(line) - suffixWidth
	token := line[end-version.Components : end]

	v, err := version.Decode(token)
	if err != nil {
		return "", types.Release{}, fmt.Errorf("%w: %w", ErrMalformedListingLine, err)
	}
	return v, types.Release{Token: token, Date: line[:dateWidth]}, nil
}

// Versions returns the keys of m in ascending numeric order.
func Versions(m types.VersionMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	version.Sort(keys)
	return keys
}

// Latest returns the highest version in m. The boolean is false for an empty
// map.
func Latest(m types.VersionMap) (string, types.Release, bool) {
	keys := Versions(m)
	if len(keys) == 0 {
		return "", types.Release{}, false
	}
	v := keys[len(keys)-1]
	return v, m[v], true
}

// Format renders m as "version<TAB>date" lines in ascending order.
func Format(m types.VersionMap) string {
	var b strings.Builder
	for _, v := range Versions(m) {
		fmt.Fprintf(&b, "%s\t%s\n", v, m[v].Date)
	}
	return b.String()
}
