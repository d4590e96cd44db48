// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsasn1/internal/asn1"
	"github.com/pdiddy/tsasn1/internal/catalog"
	"github.com/pdiddy/tsasn1/internal/pipeline"
	"github.com/pdiddy/tsasn1/internal/secrets"
	"github.com/pdiddy/tsasn1/pkg/types"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultUserAgent   = "tsasn1/0.1"
	defaultCatalogPath = ".tsasn1/catalog.db"
)

// bindFlag ties a config key to a flag so the flag, TSASN1_* environment
// variables and the config file all feed the same key.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

// pipelineConfig assembles the stage configuration from viper. Credentials
// set in config win over .secrets/ files.
func pipelineConfig() types.PipelineConfig {
	timeout := viper.GetDuration("archive.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ext := viper.GetString("extraction.extension")
	if ext == "" {
		ext = asn1.DefaultExtension
	}
	workDir := viper.GetString("conversion.work_dir")
	if workDir == "" {
		workDir = pipeline.DefaultWorkDir
	}

	return types.PipelineConfig{
		Archive: types.ArchiveConfig{
			Transport:   types.Transport(viper.GetString("archive.transport")),
			FTPHost:     viper.GetString("archive.ftp_host"),
			FTPUser:     loadedSecrets.Get(secrets.KeyFTPUser, viper.GetString("archive.ftp_user")),
			FTPPassword: loadedSecrets.Get(secrets.KeyFTPPassword, viper.GetString("archive.ftp_password")),
			HTTPBase:    viper.GetString("archive.http_base"),
			Timeout:     timeout,
			UserAgent:   defaultUserAgent,
			MaxRetries:  viper.GetInt("archive.max_retries"),
		},
		Conversion: types.ConversionConfig{
			Backend:    types.ConversionBackend(viper.GetString("conversion.backend")),
			SofficeBin: viper.GetString("conversion.soffice_bin"),
			Image:      viper.GetString("conversion.image"),
			WorkDir:    workDir,
		},
		Extraction: types.ExtractionConfig{
			OutputDir: viper.GetString("extraction.output_dir"),
			Extension: ext,
			Manifest:  viper.GetBool("extraction.manifest"),
		},
		Catalog: types.CatalogConfig{
			Path: viper.GetString("catalog.path"),
		},
	}
}

var _ pipeline.Catalog = (*catalog.Store)(nil)

// openCatalog opens the catalog named in cfg, or returns nil when it is
// disabled.
func openCatalog(cfg types.CatalogConfig) (*catalog.Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return catalog.Open(cfg)
}
