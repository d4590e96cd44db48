// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsasn1/internal/archive"
	"github.com/pdiddy/tsasn1/internal/asn1"
	"github.com/pdiddy/tsasn1/pkg/types"
)

const specText = "Some prose.\n" +
	"9.2\tMessage definitions\n" +
	"-- ASN1START\n" +
	"Msg ::= SEQUENCE { a INTEGER }\n" +
	"-- ASN1STOP\n" +
	"9.3\tInformation elements\n" +
	"-- ASN1START\n" +
	"IE ::= INTEGER (0..7)\n" +
	"-- ASN1STOP\n"

type stubFetcher struct {
	lines   []string
	listErr error
	archive []byte
}

func (s *stubFetcher) Listing(context.Context, string) ([]string, error) {
	return s.lines, s.listErr
}

func (s *stubFetcher) Fetch(_ context.Context, number, token string) ([]byte, error) {
	if s.archive == nil {
		return nil, archive.ErrNotFound
	}
	return s.archive, nil
}

type stubConverter struct {
	text string
	err  error
}

func (s stubConverter) Convert(context.Context, string) (string, error) {
	return s.text, s.err
}

type memCatalog struct {
	listings map[string]types.VersionMap
	runs     []types.Manifest
}

func (m *memCatalog) SaveListing(_ context.Context, spec string, v types.VersionMap, _ time.Time) error {
	if m.listings == nil {
		m.listings = map[string]types.VersionMap{}
	}
	m.listings[spec] = v
	return nil
}

func (m *memCatalog) Listing(_ context.Context, spec string) (types.VersionMap, time.Time, error) {
	v, ok := m.listings[spec]
	if !ok {
		return nil, time.Time{}, errors.New("no cached listing")
	}
	return v, time.Now(), nil
}

func (m *memCatalog) RecordExtraction(_ context.Context, man types.Manifest) (int64, error) {
	m.runs = append(m.runs, man)
	return int64(len(m.runs)), nil
}

func docArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("38413-f23.doc")
	require.NoError(t, err)
	_, err = w.Write([]byte("binary word document"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func testConfig(t *testing.T) types.PipelineConfig {
	t.Helper()
	return types.PipelineConfig{
		Conversion: types.ConversionConfig{WorkDir: t.TempDir()},
		Extraction: types.ExtractionConfig{OutputDir: t.TempDir(), Manifest: true},
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cat := &memCatalog{}
	deps := Deps{
		Fetcher: &stubFetcher{
			lines: []string{
				"03-28-19  10:00AM               500000 38413-f23.zip",
				"12-20-18  09:00AM               480000 38413-f10.zip",
			},
			archive: docArchive(t),
		},
		Converter: stubConverter{text: specText},
		Catalog:   cat,
	}
	var out bytes.Buffer

	res, err := Run(context.Background(), Request{Spec: "38.413"}, cfg, deps, &out)
	require.NoError(t, err)

	assert.Equal(t, "38413", res.Selection.Spec)
	assert.Equal(t, "15.2.3", res.Selection.Version)
	assert.Equal(t, asn1.ExtractSummary{Written: 2}, res.Summary)
	assert.Equal(t, filepath.Join(cfg.Conversion.WorkDir, "text", "38413-f23.txt"), res.TextPath)

	data, err := os.ReadFile(filepath.Join(cfg.Extraction.OutputDir, "Message definitions.asn1"))
	require.NoError(t, err)
	assert.Equal(t, "-- ASN1START\nMsg ::= SEQUENCE { a INTEGER }\n-- ASN1STOP\n", string(data))
	assert.FileExists(t, filepath.Join(cfg.Extraction.OutputDir, "Information elements.asn1"))

	require.Equal(t, ManifestPath(cfg.Extraction.OutputDir, "38413", "f23"), res.ManifestPath)
	raw, err := os.ReadFile(res.ManifestPath)
	require.NoError(t, err)
	var m types.Manifest
	require.NoError(t, yaml.Unmarshal(raw, &m))
	assert.Equal(t, "15.2.3", m.Version)
	assert.Equal(t, "38413-f23.doc", m.Document)
	require.Len(t, m.Artifacts, 2)
	assert.Equal(t, "Information elements", m.Artifacts[1].Title)

	require.Len(t, cat.runs, 1)
	assert.Equal(t, "f23", cat.runs[0].Token)
	assert.Contains(t, cat.listings, "38413")
	assert.Contains(t, out.String(), "38413 15.2.3: 2 block(s) written, 0 overwritten")
}

func TestRun_ExplicitVersionWithoutCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Extraction.Manifest = false
	deps := Deps{
		Fetcher:   &stubFetcher{listErr: archive.ErrListingUnsupported, archive: docArchive(t)},
		Converter: stubConverter{text: specText},
	}
	var out bytes.Buffer

	res, err := Run(context.Background(), Request{Spec: "38413", Version: "15.2.3"}, cfg, deps, &out)
	require.NoError(t, err)
	assert.False(t, res.Selection.Verified)
	assert.Empty(t, res.ManifestPath)
	assert.Equal(t, 2, res.Summary.Total())
	assert.Contains(t, out.String(), "warning: cannot verify")
}

func TestRun_ReusesConvertedText(t *testing.T) {
	cfg := testConfig(t)
	deps := Deps{
		Fetcher:   &stubFetcher{listErr: archive.ErrListingUnsupported, archive: docArchive(t)},
		Converter: stubConverter{text: specText},
	}
	req := Request{Spec: "38413", Version: "15.2.3"}

	_, err := Run(context.Background(), req, cfg, deps, &bytes.Buffer{})
	require.NoError(t, err)

	deps.Converter = stubConverter{err: errors.New("must not be called")}
	var out bytes.Buffer
	_, err = Run(context.Background(), req, cfg, deps, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "skipped: 38413-f23.txt")
}

func TestRun_Errors(t *testing.T) {
	convErr := errors.New("soffice crashed")

	tests := []struct {
		name    string
		req     Request
		deps    Deps
		outDir  string
		wantErr error
	}{
		{
			name:    "bad spec number",
			req:     Request{Spec: "3a"},
			wantErr: archive.ErrInvalidSpecNumber,
		},
		{
			name:    "output dir missing",
			req:     Request{Spec: "38413"},
			outDir:  "does-not-exist",
			wantErr: ErrOutputDirMissing,
		},
		{
			name: "conversion fails",
			req:  Request{Spec: "38413", Version: "15.2.3"},
			deps: Deps{
				Fetcher:   &stubFetcher{listErr: archive.ErrListingUnsupported, archive: docArchive(t)},
				Converter: stubConverter{err: convErr},
			},
			wantErr: convErr,
		},
		{
			name: "unterminated block",
			req:  Request{Spec: "38413", Version: "15.2.3"},
			deps: Deps{
				Fetcher:   &stubFetcher{listErr: archive.ErrListingUnsupported, archive: docArchive(t)},
				Converter: stubConverter{text: "1\tT\n-- ASN1START\nX ::= INTEGER\n"},
			},
			wantErr: asn1.ErrUnterminatedBlock,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.outDir != "" {
				cfg.Extraction.OutputDir = filepath.Join(t.TempDir(), tt.outDir)
			}
			_, err := Run(context.Background(), tt.req, cfg, tt.deps, &bytes.Buffer{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_PartialArtifactsKept(t *testing.T) {
	cfg := testConfig(t)
	deps := Deps{
		Fetcher: &stubFetcher{listErr: archive.ErrListingUnsupported, archive: docArchive(t)},
		Converter: stubConverter{text: "1\tFirst\n-- ASN1START\nA ::= INTEGER\n-- ASN1STOP\n" +
			"2\tSecond\n-- ASN1START\nB ::= INTEGER\n"},
	}

	res, err := Run(context.Background(), Request{Spec: "38413", Version: "15.2.3"}, cfg, deps, &bytes.Buffer{})
	require.ErrorIs(t, err, asn1.ErrUnterminatedBlock)
	require.Len(t, res.Manifest.Artifacts, 1)
	assert.FileExists(t, filepath.Join(cfg.Extraction.OutputDir, "First.asn1"))
	assert.NoFileExists(t, filepath.Join(cfg.Extraction.OutputDir, "Second.asn1"))
}
