// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package asn1

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tsasn1/pkg/types"
)

// DefaultExtension is appended to section titles to name artifacts.
const DefaultExtension = "asn1"

const maxLineSize = 4 << 20

// Sink stores finished sections. Write returns where the section went.
type Sink interface {
	Write(name string, lines []string) (string, error)
}

// Extractor runs the block state machine over a document.
type Extractor struct {
	// Extension names artifacts "<title>.<Extension>" (default "asn1").
	Extension string
}

// FileName returns the artifact name for a section title. Path separators
// are replaced so the artifact stays inside the output directory.
func (e Extractor) FileName(title string) string {
	ext := e.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	safe := strings.NewReplacer("/", "_", `\`, "_").Replace(title)
	return safe + "." + ext
}

// Extract reads r line by line and writes every finished section to sink as
// soon as its stop marker is seen. Progress lines go to w. On error the
// artifacts written so far are returned with it; an unterminated trailing
// block is never written.
func (e Extractor) Extract(r io.Reader, sink Sink, w io.Writer) ([]types.Artifact, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		state     State
		artifacts []types.Artifact
		written   = map[string]bool{}
	)

	for sc.Scan() {
		next, sec, err := Step(state, sc.Text())
		if err != nil {
			return artifacts, err
		}
		state = next
		if sec == nil {
			continue
		}

		name := e.FileName(sec.Title)
		path, err := sink.Write(name, sec.Lines)
		if err != nil {
			return artifacts, fmt.Errorf("writing %s: %w", name, err)
		}
		a := types.Artifact{
			Title:     sec.Title,
			Path:      path,
			StartLine: sec.StartLine,
			Lines:     len(sec.Lines),
			Overwrote: written[name],
		}
		written[name] = true
		artifacts = append(artifacts, a)

		if a.Overwrote {
			fmt.Fprintf(w, "overwrote: %s (%d lines)\n", name, a.Lines)
		} else {
			fmt.Fprintf(w, "extracted: %s (%d lines)\n", name, a.Lines)
		}
	}
	if err := sc.Err(); err != nil {
		return artifacts, fmt.Errorf("reading text: %w", err)
	}

	return artifacts, Finish(state)
}

// ExtractFile runs Extract over the text file at path.
func (e Extractor) ExtractFile(path string, sink Sink, w io.Writer) ([]types.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening text %s: %w", path, err)
	}
	defer f.Close()
	return e.Extract(f, sink, w)
}

// DirSink writes each section to a file in Dir, replacing any file of the
// same name.
type DirSink struct {
	Dir string
}

func (d DirSink) Write(name string, lines []string) (string, error) {
	path := filepath.Join(d.Dir, name)

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := writeFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".asn1-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ExtractSummary counts the files written by one extraction pass.
type ExtractSummary struct {
	Written     int
	Overwritten int
}

// Total returns the number of blocks extracted.
func (s ExtractSummary) Total() int {
	return s.Written + s.Overwritten
}

// Summarize counts artifacts, separating those that replaced an earlier
// block under the same title.
func Summarize(artifacts []types.Artifact) ExtractSummary {
	var s ExtractSummary
	for _, a := range artifacts {
		if a.Overwrote {
			s.Overwritten++
		} else {
			s.Written++
		}
	}
	return s
}
