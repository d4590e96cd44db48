// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/pkg/types"
)

const (
	docDir      = "doc"
	metadataDir = "metadata"
)

// Acquire downloads the selected release, unpacks its document into
// workDir/doc/ and writes a metadata record to workDir/metadata/. A release
// whose metadata and document are already present is not downloaded again.
func Acquire(ctx context.Context, f archive.Fetcher, sel Selection, workDir string, w io.Writer) (*types.Acquisition, bool, error) {
	stem := sel.Spec + "-" + sel.Token
	metaPath := filepath.Join(workDir, metadataDir, stem+".yaml")

	if a, err := readMetadata(metaPath); err == nil {
		if _, statErr := os.Stat(a.DocPath); statErr == nil {
			fmt.Fprintf(w, "skipped: %s (already downloaded)\n", stem)
			return a, true, nil
		}
	}

	for _, dir := range []string{
		filepath.Join(workDir, docDir),
		filepath.Join(workDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	archivePath := archive.Path(sel.Spec, sel.Token)
	fmt.Fprintf(w, "downloading: %s\n", archivePath)

	data, err := f.Fetch(ctx, sel.Spec, sel.Token)
	if err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", stem, err)
	}

	doc, err := archive.FindDocument(data)
	if err != nil {
		return nil, false, fmt.Errorf("unpacking %s: %w", stem, err)
	}
	fmt.Fprintf(w, "found document: %s\n", doc.Name)

	docPath := filepath.Join(workDir, docDir, stem+doc.Ext())
	if err := writeFileAtomic(docPath, doc.Data); err != nil {
		return nil, false, fmt.Errorf("saving %s: %w", docPath, err)
	}

	a := &types.Acquisition{
		Spec:        sel.Spec,
		Version:     sel.Version,
		Token:       sel.Token,
		Date:        sel.Date,
		ArchivePath: archivePath,
		Document:    doc.Name,
		DocPath:     docPath,
		FetchedAt:   time.Now().UTC(),
	}
	if err := writeMetadata(a, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing metadata for %s: %w", stem, err)
	}
	return a, false, nil
}

// writeFileAtomic writes to a temp file and renames it into place, so an
// interrupted download never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeMetadata(a *types.Acquisition, path string) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readMetadata(path string) (*types.Acquisition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a types.Acquisition
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
