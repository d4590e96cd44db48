// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/internal/convert"
	"github.com/pdiddy/tsasn1/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract <spec>",
	Short: "Download a specification and extract its ASN.1 blocks",
	Long: `Extract runs the whole pipeline for one specification: it picks a release
(the latest unless --version is given), downloads the archive, unpacks the
Word document, renders it as text and writes each ASN.1 block to
<output-dir>/<section title>.asn1.

Downloads and text renderings are kept under --work-dir and reused on later
runs. The output directory must already exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringP("version", "v", "", "specification version, e.g. 15.2.3 (default: latest)")
	f.StringP("output-dir", "o", ".", "directory that receives the ASN.1 files")
	f.String("backend", "soffice", "conversion backend: soffice or container")
	f.String("image", convert.DefaultImage, "container image for the container backend")
	f.String("work-dir", pipeline.DefaultWorkDir, "directory for downloaded documents and text renderings")
	f.Bool("manifest", false, "write a YAML manifest of the extracted files")

	bindFlag("extraction.output_dir", f.Lookup("output-dir"))
	bindFlag("conversion.backend", f.Lookup("backend"))
	bindFlag("conversion.image", f.Lookup("image"))
	bindFlag("conversion.work_dir", f.Lookup("work-dir"))
	bindFlag("extraction.manifest", f.Lookup("manifest"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	requested, _ := cmd.Flags().GetString("version")
	ctx := context.Background()
	cfg := pipelineConfig()

	fetcher, err := archive.NewFetcher(cfg.Archive)
	if err != nil {
		return err
	}
	conv, err := convert.New(ctx, cfg.Conversion)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{Fetcher: fetcher, Converter: conv}
	store, err := openCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		deps.Catalog = store
	}

	_, err = pipeline.Run(ctx, pipeline.Request{Spec: args[0], Version: requested}, cfg, deps, os.Stdout)
	return err
}
