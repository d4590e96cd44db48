// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records and configuration shared by the tsasn1
// pipeline stages.
package types

import "time"

// Release is one published revision of a specification as it appears in the
// archive listing.
type Release struct {
	// Token is the 3-character encoded version used in archive file names
	// (e.g. "f23" for 15.2.3).
	Token string `json:"token" yaml:"token"`

	// Date is the publication date exactly as the listing prints it
	// (MM-DD-YY).
	Date string `json:"date" yaml:"date"`
}

// VersionMap maps a dotted semantic version ("15.2.3") to its release.
// It is built once per listing and not mutated afterwards.
type VersionMap map[string]Release

// Acquisition records a downloaded release and where its document was
// unpacked. It is written as YAML next to the document.
type Acquisition struct {
	Spec        string    `json:"spec" yaml:"spec"`
	Version     string    `json:"version" yaml:"version"`
	Token       string    `json:"token" yaml:"token"`
	Date        string    `json:"date,omitempty" yaml:"date,omitempty"`
	ArchivePath string    `json:"archive_path" yaml:"archive_path"`
	Document    string    `json:"document" yaml:"document"`
	DocPath     string    `json:"doc_path" yaml:"doc_path"`
	FetchedAt   time.Time `json:"fetched_at" yaml:"fetched_at"`
}
