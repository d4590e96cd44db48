// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsasn1/internal/listing"
	"github.com/pdiddy/tsasn1/pkg/types"
)

// ExportRelease is one cached listing row.
type ExportRelease struct {
	Version string `json:"version" yaml:"version"`
	Token   string `json:"token" yaml:"token"`
	Date    string `json:"date" yaml:"date"`
}

// ExportSpec holds the cached listing and runs of one spec.
type ExportSpec struct {
	Spec     string           `json:"spec" yaml:"spec"`
	Releases []ExportRelease  `json:"releases" yaml:"releases"`
	Runs     []types.Manifest `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Snapshot collects the whole catalog, or one spec when spec is non-empty.
func (s *Store) Snapshot(ctx context.Context, spec string) ([]ExportSpec, error) {
	specs := []string{spec}
	if spec == "" {
		var err error
		if specs, err = s.Specs(ctx); err != nil {
			return nil, err
		}
	}

	out := make([]ExportSpec, 0, len(specs))
	for _, sp := range specs {
		entry := ExportSpec{Spec: sp}
		versions, _, err := s.Listing(ctx, sp)
		if err == nil {
			for _, v := range listing.Versions(versions) {
				entry.Releases = append(entry.Releases, ExportRelease{
					Version: v, Token: versions[v].Token, Date: versions[v].Date,
				})
			}
		}
		if entry.Runs, err = s.Extractions(ctx, sp); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// ExportYAML writes Snapshot(spec) to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, spec string, w io.Writer) error {
	snap, err := s.Snapshot(ctx, spec)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes Snapshot(spec) to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, spec string, w io.Writer) error {
	snap, err := s.Snapshot(ctx, spec)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
