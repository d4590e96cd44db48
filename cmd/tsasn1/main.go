// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tsasn1 CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsasn1/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the tsasn1 CLI.
var rootCmd = &cobra.Command{
	Use:   "tsasn1",
	Short: "Extract ASN.1 definitions from 3GPP technical specifications",
	Long: `tsasn1 finds published releases of a 3GPP technical specification in the
3GPP archive, downloads the Word document of the chosen release, renders it
as text and writes every ASN.1 block it contains to its own file.

Each stage is also available on its own: versions lists releases, asn1
extracts blocks from a text file you already have, and encode/decode/path
expose the archive naming scheme.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./tsasn1.yaml or ~/.config/tsasn1/tsasn1.yaml)")
	pf.String("transport", "ftp", "archive transport: ftp or http")
	pf.String("ftp-host", "", "archive FTP server host[:port] (default ftp.3gpp.org)")
	pf.String("http-base", "", "archive HTTP base URL (default https://www.3gpp.org/ftp/)")
	pf.Duration("timeout", defaultTimeout, "network timeout for dialing and each transfer")
	pf.String("catalog", defaultCatalogPath, "SQLite catalog path (empty disables the catalog)")

	bindFlag("archive.transport", pf.Lookup("transport"))
	bindFlag("archive.ftp_host", pf.Lookup("ftp-host"))
	bindFlag("archive.http_base", pf.Lookup("http-base"))
	bindFlag("archive.timeout", pf.Lookup("timeout"))
	bindFlag("catalog.path", pf.Lookup("catalog"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tsasn1")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tsasn1"))
		}
	}

	viper.SetEnvPrefix("TSASN1")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
