// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive locates and retrieves specification releases from the 3GPP
// archive. Releases live at
//
//	Specs/archive/<series>_series/<series>.<rest>/<number>-<token>.zip
//
// where series is the first two digits of the specification number.
package archive

import (
	"errors"
	"fmt"
	"strings"
)

const (
	archiveRoot = "Specs/archive"
	seriesWidth = 2
	minDigits   = seriesWidth + 1
)

// ErrInvalidSpecNumber is returned for a specification number that is not
// at least three digits.
var ErrInvalidSpecNumber = errors.New("invalid specification number")

// Normalize accepts "38413" or the dotted "38.413" and returns the bare
// digits.
func Normalize(number string) (string, error) {
	n := strings.TrimSpace(number)
	if i := strings.IndexByte(n, '.'); i == seriesWidth {
		n = n[:i] + n[i+1:]
	}
	if len(n) < minDigits {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpecNumber, number)
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidSpecNumber, number)
		}
	}
	return n, nil
}

// Series returns the series of a normalized number ("38" for "38413").
func Series(number string) string {
	return number[:seriesWidth]
}

// Dotted returns the dotted form of a normalized number ("38.413").
func Dotted(number string) string {
	return number[:seriesWidth] + "." + number[seriesWidth:]
}

// FileName returns the archive file name for a release ("38413-f23.zip").
func FileName(number, token string) string {
	return number + "-" + token + ".zip"
}

// Dir returns the archive directory holding every release of number.
func Dir(number string) string {
	return fmt.Sprintf("%s/%s_series/%s", archiveRoot, Series(number), Dotted(number))
}

// Path returns the archive path of one release.
func Path(number, token string) string {
	return Dir(number) + "/" + FileName(number, token)
}
