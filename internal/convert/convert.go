// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders specification documents (.doc/.docx) as plain
// text with pluggable backends: a local LibreOffice or a container image.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tsasn1/internal/container"
	"github.com/pdiddy/tsasn1/pkg/types"
)

// Converter turns the document at docPath into plain text.
type Converter interface {
	Convert(ctx context.Context, docPath string) (string, error)
}

// New returns the converter selected by cfg.Backend.
func New(ctx context.Context, cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendSoffice, "":
		return NewSofficeConverter(cfg.SofficeBin, container.DefaultExecutor)
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(ctx, rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unsupported conversion backend %q: use soffice or container", cfg.Backend)
	}
}

// TextPath returns where the text rendering of docPath is cached.
func TextPath(docPath, textDir string) string {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(textDir, base+".txt")
}

// ConvertFile converts docPath into textDir and returns the text file path.
// An existing rendering is reused and reported as skipped.
func ConvertFile(ctx context.Context, c Converter, docPath, textDir string, w io.Writer) (textPath string, skipped bool, err error) {
	textPath = TextPath(docPath, textDir)
	base := filepath.Base(textPath)

	if _, err := os.Stat(textPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already converted)\n", base)
		return textPath, true, nil
	}

	if err := os.MkdirAll(textDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", textDir, err)
	}

	text, err := c.Convert(ctx, docPath)
	if err != nil {
		return "", false, err
	}

	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return "", false, fmt.Errorf("writing %s: %w", textPath, err)
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return textPath, false, nil
}
