// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Artifact describes one ASN.1 block written to the output directory.
type Artifact struct {
	// Title is the section title the block was found under.
	Title string `json:"title" yaml:"title"`

	// Path is the file the block was written to.
	Path string `json:"path" yaml:"path"`

	// StartLine is the 1-based line of the start marker in the source text.
	StartLine int `json:"start_line" yaml:"start_line"`

	// Lines is the number of lines written, markers included.
	Lines int `json:"lines" yaml:"lines"`

	// Overwrote is set when the file replaced an artifact written earlier in
	// the same pass (two blocks under one title).
	Overwrote bool `json:"overwrote,omitempty" yaml:"overwrote,omitempty"`
}

// Manifest is the record of one extraction run, written next to the
// artifacts when requested and stored in the catalog.
type Manifest struct {
	Spec        string     `json:"spec" yaml:"spec"`
	Version     string     `json:"version" yaml:"version"`
	Token       string     `json:"token" yaml:"token"`
	Document    string     `json:"document" yaml:"document"`
	ExtractedAt time.Time  `json:"extracted_at" yaml:"extracted_at"`
	Artifacts   []Artifact `json:"artifacts" yaml:"artifacts"`
}
