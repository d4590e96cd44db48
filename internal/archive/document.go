// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrNoDocument is returned when a release archive holds no Word document.
var ErrNoDocument = errors.New("no .doc or .docx document in archive")

// Document is the specification text document unpacked from a release.
type Document struct {
	Name string
	Data []byte
}

// Ext returns the document's extension, including the dot.
func (d Document) Ext() string {
	return strings.ToLower(path.Ext(d.Name))
}

// FindDocument unpacks the specification document from a release archive.
// Releases normally carry one .doc; if several are present the last one wins.
// Newer releases ship .docx only, which is used when no .doc exists.
func FindDocument(zipData []byte) (Document, error) {
	r, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return Document{}, fmt.Errorf("opening zip: %w", err)
	}

	var doc, docx *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(f.Name)) {
		case ".doc":
			doc = f
		case ".docx":
			docx = f
		}
	}
	pick := doc
	if pick == nil {
		pick = docx
	}
	if pick == nil {
		return Document{}, ErrNoDocument
	}

	rc, err := pick.Open()
	if err != nil {
		return Document{}, fmt.Errorf("opening %s: %w", pick.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxArchiveSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", pick.Name, err)
	}
	if len(data) > maxArchiveSize {
		return Document{}, fmt.Errorf("%s exceeds %d bytes", pick.Name, maxArchiveSize)
	}
	return Document{Name: pick.Name, Data: data}, nil
}
