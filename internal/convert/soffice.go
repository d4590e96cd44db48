// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdiddy/tsasn1/internal/container"
)

const defaultSofficeBin = "soffice"

// SofficeConverter prints a document as text with
// "soffice --headless --cat <file>".
type SofficeConverter struct {
	bin  string
	exec container.Executor
}

// NewSofficeConverter checks that bin (default "soffice") is on PATH.
func NewSofficeConverter(bin string, exec container.Executor) (*SofficeConverter, error) {
	if bin == "" {
		bin = defaultSofficeBin
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("LibreOffice (%s) not found on PATH: %w", bin, err)
	}
	return &SofficeConverter{bin: bin, exec: exec}, nil
}

func (s *SofficeConverter) Convert(ctx context.Context, docPath string) (string, error) {
	var out bytes.Buffer
	args := []string{"--headless", "--cat", docPath}
	if err := s.exec.RunPiped(ctx, s.bin, args, nil, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", docPath, s.bin, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", s.bin, docPath)
	}
	return out.String(), nil
}
