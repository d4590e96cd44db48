// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package version converts between dotted semantic versions ("15.2.3") and
// the 3-character tokens used in 3GPP archive file names ("f23"). Each
// component is one base-36 digit, so components are limited to 0-35.
package version

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Components is the number of dotted components in a version and the
// number of characters in a token.
const Components = 3

// maxComponent is the largest value a single token character can hold.
const maxComponent = 35

var (
	// ErrComponentOutOfRange is returned by Encode for a component above 35.
	ErrComponentOutOfRange = errors.New("version component out of range")

	// ErrMalformedVersion is returned when a version or token does not have
	// exactly three components.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrInvalidTokenCharacter is returned by Decode for a character outside
	// 0-9a-z.
	ErrInvalidTokenCharacter = errors.New("invalid token character")
)

// Encode returns the archive token for version. Characters other than digits
// and periods are dropped first, so "v15.2.3" encodes like "15.2.3".
func Encode(version string) (string, error) {
	parts, err := split(version)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range parts {
		if n > maxComponent {
			return "", fmt.Errorf("%w: %d in %q", ErrComponentOutOfRange, n, version)
		}
		b.WriteByte(strconv.FormatInt(int64(n), 36)[0])
	}
	return b.String(), nil
}

// Decode returns the dotted version for an archive token.
func Decode(token string) (string, error) {
	if len(token) != Components {
		return "", fmt.Errorf("%w: token %q is not %d characters", ErrMalformedVersion, token, Components)
	}

	parts := make([]string, 0, Components)
	for i := 0; i < len(token); i++ {
		n, err := digit(token[i])
		if err != nil {
			return "", fmt.Errorf("%w: %q in %q", err, token[i], token)
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, "."), nil
}

// Compare orders two versions numerically component by component. It returns
// -1, 0 or 1. Versions that fail to parse sort before valid ones and compare
// to each other as strings.
func Compare(a, b string) int {
	pa, errA := split(a)
	pb, errB := split(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	for i := range pa {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sort orders versions ascending in place using Compare.
func Sort(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) < 0
	})
}

// split strips non-version characters and parses the three components.
func split(version string) ([]int, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, version)

	fields := strings.Split(cleaned, ".")
	if len(fields) != Components {
		return nil, fmt.Errorf("%w: %q needs %d components", ErrMalformedVersion, version, Components)
	}

	parts := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: empty component in %q", ErrMalformedVersion, version)
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			// Only digits remain, so this is an overflow.
			return nil, fmt.Errorf("%w: %s in %q", ErrComponentOutOfRange, f, version)
		}
		parts[i] = n
	}
	return parts, nil
}

func digit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, nil
	default:
		return 0, ErrInvalidTokenCharacter
	}
}
