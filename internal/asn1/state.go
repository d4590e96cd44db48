// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package asn1 extracts ASN.1 blocks from the plain-text rendering of a
// specification. A block runs from a "-- ASN1START" line to the next
// "-- ASN1STOP" line and is named after the most recent numbered section
// title ("9.3.1.1<TAB>Cause").
package asn1

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	StartMarker = "-- ASN1START"
	StopMarker  = "-- ASN1STOP"
)

// titlePattern matches a section heading: a number, one tab, the title.
var titlePattern = regexp.MustCompile(`^([0-9.]+)\t(.*)$`)

var (
	// ErrMissingTitle is returned for a start marker seen before any title.
	ErrMissingTitle = errors.New("ASN.1 block has no preceding section title")

	// ErrNestedBlock is returned for a start marker inside an open block.
	ErrNestedBlock = errors.New("ASN.1 block started inside another block")

	// ErrUnterminatedBlock is returned when the text ends inside a block.
	ErrUnterminatedBlock = errors.New("ASN.1 block not terminated")
)

// LineError ties an extraction error to the 1-based input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Mode is the scanner state.
type Mode int

const (
	// ModeText skips prose and tracks section titles.
	ModeText Mode = iota
	// ModeASN copies lines into the open section.
	ModeASN
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeASN:
		return "asn"
	default:
		return "unknown"
	}
}

// Section is one ASN.1 block, markers included.
type Section struct {
	Title     string
	StartLine int
	Lines     []string
}

// State is the extraction state after some number of lines. The zero value
// is the initial state. A State is consumed by Step; keep only the returned
// one, since the open section's line buffer is shared between them.
type State struct {
	Mode     Mode
	Title    string
	HasTitle bool
	// Line is the number of lines consumed so far.
	Line int
	open Section
}

// Step consumes one line and returns the next state. When the line closes a
// block the finished section is returned as well.
func Step(s State, line string) (State, *Section, error) {
	s.Line++

	switch s.Mode {
	case ModeText:
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			s.Title = m[2]
			s.HasTitle = true
			return s, nil, nil
		}
		if line != StartMarker {
			return s, nil, nil
		}
		if !s.HasTitle {
			return s, nil, &LineError{Line: s.Line, Err: ErrMissingTitle}
		}
		s.open = Section{Title: s.Title, StartLine: s.Line, Lines: []string{line}}
		s.Mode = ModeASN
		return s, nil, nil

	case ModeASN:
		if line == StartMarker {
			return s, nil, &LineError{
				Line: s.Line,
				Err:  fmt.Errorf("%w (open block %q from line %d)", ErrNestedBlock, s.open.Title, s.open.StartLine),
			}
		}
		s.open.Lines = append(s.open.Lines, line)
		if line != StopMarker {
			return s, nil, nil
		}
		done := s.open
		s.open = Section{}
		s.Mode = ModeText
		return s, &done, nil
	}

	return s, nil, fmt.Errorf("unknown extraction mode %d", s.Mode)
}

// Finish reports an error when s is still inside a block.
func Finish(s State) error {
	if s.Mode == ModeASN {
		return &LineError{
			Line: s.open.StartLine,
			Err:  fmt.Errorf("%w: %q", ErrUnterminatedBlock, s.open.Title),
		}
	}
	return nil
}
