// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Transport selects how the archive is reached.
type Transport string

const (
	TransportFTP  Transport = "ftp"
	TransportHTTP Transport = "http"
)

// ArchiveConfig holds settings for reaching the specification archive.
type ArchiveConfig struct {
	// Transport is ftp (default) or http. Only ftp can list versions.
	Transport Transport `json:"transport" yaml:"transport"`

	// FTPHost is host[:port] of the archive FTP server (default ftp.3gpp.org:21).
	FTPHost string `json:"ftp_host" yaml:"ftp_host"`

	// FTPUser and FTPPassword default to an anonymous login.
	FTPUser     string `json:"ftp_user,omitempty" yaml:"ftp_user,omitempty"`
	FTPPassword string `json:"-" yaml:"-"`

	// HTTPBase is the URL prefix the archive path is appended to
	// (default https://www.3gpp.org/ftp/).
	HTTPBase string `json:"http_base" yaml:"http_base"`

	// Timeout bounds dialing and each transfer.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds HTTP retries on 429/503 (0 = default).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConversionBackend identifies the document-to-text tool.
type ConversionBackend string

const (
	BackendSoffice   ConversionBackend = "soffice"
	BackendContainer ConversionBackend = "container"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects soffice (local LibreOffice) or container.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// SofficeBin is the LibreOffice binary (default "soffice").
	SofficeBin string `json:"soffice_bin" yaml:"soffice_bin"`

	// Image is the container image that reads a document on stdin and writes
	// plain text on stdout.
	Image string `json:"image" yaml:"image"`

	// WorkDir holds downloaded documents (doc/) and their text renderings
	// (text/).
	WorkDir string `json:"work_dir" yaml:"work_dir"`
}

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// OutputDir receives one file per ASN.1 block. It must exist.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Extension is appended to the block title (default "asn1").
	Extension string `json:"extension" yaml:"extension"`

	// Manifest, when set, writes <spec>-<token>.manifest.yaml into OutputDir.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// CatalogConfig holds settings for the local SQLite catalog.
type CatalogConfig struct {
	// Path is the database file. Empty disables the catalog.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Archive    ArchiveConfig    `json:"archive" yaml:"archive"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}
