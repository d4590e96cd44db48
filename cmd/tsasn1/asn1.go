// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tsasn1/internal/asn1"
)

var asn1Cmd = &cobra.Command{
	Use:   "asn1 <textfile>",
	Short: "Extract ASN.1 blocks from a plain-text specification",
	Long: `Asn1 scans a plain-text rendering of a specification for blocks delimited
by "-- ASN1START" and "-- ASN1STOP" lines and writes each one to
<output-dir>/<section title>.<ext>, named after the nearest preceding
numbered section heading.`,
	Args: cobra.ExactArgs(1),
	RunE: runASN1,
}

func init() {
	asn1Cmd.Flags().StringP("output-dir", "o", ".", "directory that receives the ASN.1 files")
	asn1Cmd.Flags().String("ext", asn1.DefaultExtension, "file extension for extracted blocks")

	rootCmd.AddCommand(asn1Cmd)
}

func runASN1(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output-dir")
	ext, _ := cmd.Flags().GetString("ext")

	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %s does not exist", outDir)
	}

	artifacts, err := asn1.Extractor{Extension: ext}.ExtractFile(args[0], asn1.DirSink{Dir: outDir}, os.Stdout)
	s := asn1.Summarize(artifacts)
	fmt.Fprintf(os.Stdout, "%d block(s) written, %d overwritten\n", s.Written, s.Overwritten)
	return err
}
