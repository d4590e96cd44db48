// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/tsasn1/internal/container"
)

// DefaultImage reads a Word document on stdin and prints its text.
const DefaultImage = "tsasn1-doc2text:latest"

// ContainerConverter pipes documents through a container image.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter verifies that image (default DefaultImage) exists in
// rt before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

func (c *ContainerConverter) Convert(ctx context.Context, docPath string) (string, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return "", fmt.Errorf("opening document %s: %w", docPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s: %w", docPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", c.image, docPath)
	}
	return out.String(), nil
}
