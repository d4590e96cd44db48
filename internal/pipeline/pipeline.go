// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full extraction for one specification: pick a
// release, download it, render it as text and write its ASN.1 blocks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsasn1/internal/acquire"
	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/internal/asn1"
	"github.com/pdiddy/tsasn1/internal/convert"
	"github.com/pdiddy/tsasn1/pkg/types"
)

// DefaultWorkDir holds downloaded documents and their text renderings.
const DefaultWorkDir = "work"

const textDir = "text"

// ErrOutputDirMissing is returned when the output directory does not exist.
// It is never created implicitly.
var ErrOutputDirMissing = errors.New("output directory does not exist")

// Catalog records listings and extraction runs. *catalog.Store implements it.
type Catalog interface {
	acquire.ListingCache
	RecordExtraction(ctx context.Context, m types.Manifest) (int64, error)
}

// Request names the specification and, optionally, the version to extract.
// An empty Version selects the latest published release.
type Request struct {
	Spec    string
	Version string
}

// Deps are the collaborators a run needs. Catalog may be nil.
type Deps struct {
	Fetcher   archive.Fetcher
	Converter convert.Converter
	Catalog   Catalog
}

// Result describes a finished run.
type Result struct {
	Selection    acquire.Selection
	TextPath     string
	ManifestPath string
	Manifest     types.Manifest
	Summary      asn1.ExtractSummary
}

// Run executes the pipeline. Artifacts written before a failure stay on disk
// and are returned in the result's manifest.
func Run(ctx context.Context, req Request, cfg types.PipelineConfig, deps Deps, w io.Writer) (Result, error) {
	spec, err := archive.Normalize(req.Spec)
	if err != nil {
		return Result{}, err
	}

	outDir := cfg.Extraction.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%s: %w", outDir, ErrOutputDirMissing)
	}

	workDir := cfg.Conversion.WorkDir
	if workDir == "" {
		workDir = DefaultWorkDir
	}

	var cache acquire.ListingCache
	if deps.Catalog != nil {
		cache = deps.Catalog
	}

	sel, err := acquire.Resolve(ctx, deps.Fetcher, spec, req.Version, cache, w)
	if err != nil {
		return Result{}, err
	}
	res := Result{Selection: sel}

	acq, _, err := acquire.Acquire(ctx, deps.Fetcher, sel, workDir, w)
	if err != nil {
		return res, err
	}

	textPath, _, err := convert.ConvertFile(ctx, deps.Converter, acq.DocPath, filepath.Join(workDir, textDir), w)
	if err != nil {
		return res, fmt.Errorf("rendering %s as text: %w", filepath.Base(acq.DocPath), err)
	}
	res.TextPath = textPath

	ex := asn1.Extractor{Extension: cfg.Extraction.Extension}
	artifacts, extractErr := ex.ExtractFile(textPath, asn1.DirSink{Dir: outDir}, w)

	res.Summary = asn1.Summarize(artifacts)
	res.Manifest = types.Manifest{
		Spec:        sel.Spec,
		Version:     sel.Version,
		Token:       sel.Token,
		Document:    acq.Document,
		ExtractedAt: time.Now().UTC(),
		Artifacts:   artifacts,
	}
	if extractErr != nil {
		return res, fmt.Errorf("extracting from %s: %w", filepath.Base(textPath), extractErr)
	}

	if cfg.Extraction.Manifest {
		path := ManifestPath(outDir, sel.Spec, sel.Token)
		if err := writeManifest(res.Manifest, path); err != nil {
			return res, err
		}
		res.ManifestPath = path
		fmt.Fprintf(w, "manifest: %s\n", path)
	}

	if deps.Catalog != nil {
		if _, err := deps.Catalog.RecordExtraction(ctx, res.Manifest); err != nil {
			fmt.Fprintf(w, "warning: recording run in catalog: %v\n", err)
		}
	}

	fmt.Fprintf(w, "%s %s: %d block(s) written, %d overwritten\n",
		sel.Spec, sel.Version, res.Summary.Written, res.Summary.Overwritten)
	return res, nil
}

// ManifestPath returns where the manifest for a release is written.
func ManifestPath(outDir, spec, token string) string {
	return filepath.Join(outDir, spec+"-"+token+".manifest.yaml")
}

func writeManifest(m types.Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
