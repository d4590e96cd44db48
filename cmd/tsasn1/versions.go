// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsasn1/internal/acquire"
	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/internal/listing"
	"github.com/pdiddy/tsasn1/pkg/types"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <spec>",
	Short: "List the published versions of a specification",
	Long: `Versions reads the archive directory of a specification and prints every
published version with its publication date, oldest first. The listing is
cached in the catalog; --cached prints the cached copy without going to the
network.`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	versionsCmd.Flags().Bool("cached", false, "read the listing from the catalog only")

	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cached, _ := cmd.Flags().GetBool("cached")

	spec, err := archive.Normalize(args[0])
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	store, err := openCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	var cache acquire.ListingCache
	if store != nil {
		defer store.Close()
		cache = store
	}

	ctx := context.Background()
	var versions types.VersionMap
	if cached {
		if store == nil {
			return fmt.Errorf("--cached needs a catalog: set --catalog")
		}
		if versions, _, err = store.Listing(ctx, spec); err != nil {
			return err
		}
	} else {
		f, err := archive.NewFetcher(cfg.Archive)
		if err != nil {
			return err
		}
		if versions, err = acquire.Versions(ctx, f, spec, cache, os.Stderr); err != nil {
			return err
		}
	}

	return writeVersions(os.Stdout, versions, format)
}

// versionEntry is one row of the json/yaml output.
type versionEntry struct {
	Version string `json:"version" yaml:"version"`
	Token   string `json:"token" yaml:"token"`
	Date    string `json:"date" yaml:"date"`
}

func writeVersions(w io.Writer, versions types.VersionMap, format string) error {
	entries := make([]versionEntry, 0, len(versions))
	for _, v := range listing.Versions(versions) {
		entries = append(entries, versionEntry{Version: v, Token: versions[v].Token, Date: versions[v].Date})
	}

	switch format {
	case "text", "":
		_, err := io.WriteString(w, listing.Format(versions))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}
