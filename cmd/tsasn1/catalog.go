// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the local catalog of listings and extraction runs",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [spec]",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export prints the cached listings and recorded extraction runs, for every
specification or only the one given, as YAML or JSON on stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogExport,
}

func init() {
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	var spec string
	if len(args) == 1 {
		spec = args[0]
	}

	store, err := openCatalog(pipelineConfig().Catalog)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("catalog disabled: set --catalog")
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		return store.ExportYAML(ctx, spec, os.Stdout)
	case "json":
		return store.ExportJSON(ctx, spec, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
