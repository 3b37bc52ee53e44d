// Package archive inspects uploaded ZIP submissions: it derives the
// metadata recorded at ingest time and extracts text entries for the
// code preview endpoint.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidArchive means the bytes could not be accepted as a ZIP
	// archive. Callers must not persist the submission.
	ErrInvalidArchive = errors.New("invalid zip archive")

	// ErrNotText means a preview entry matched the extension allow-list
	// but its content is not valid UTF-8 text.
	ErrNotText = errors.New("entry is not valid text")
)

// UnknownTopLevelDir is recorded for archives with no entries
const UnknownTopLevelDir = "Unknown"

// Limits bounds what an uploaded archive may contain. Zero values
// disable the corresponding check.
type Limits struct {
	MaxEntries      int
	MaxUncompressed int64
}

// Info is the metadata derived from a valid archive
type Info struct {
	TopLevelDirectory string
	FileSize          int64
}

// Inspect opens data as a ZIP archive and derives its metadata.
//
// The top-level directory is the first path segment of the first entry,
// or UnknownTopLevelDir when the archive is empty. FileSize is the exact
// byte length of data. Archives over the limits, or containing absolute
// or parent-escaping entry paths, are rejected as invalid.
func Inspect(data []byte, limits Limits) (*Info, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	if limits.MaxEntries > 0 && len(zr.File) > limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries exceeds limit of %d",
			ErrInvalidArchive, len(zr.File), limits.MaxEntries)
	}

	var declared uint64
	for _, f := range zr.File {
		if !safePath(f.Name) {
			return nil, fmt.Errorf("%w: unsafe entry path %q", ErrInvalidArchive, f.Name)
		}
		// Sizes come from attacker-controlled headers; the running sum
		// must not wrap past the limit check
		if declared+f.UncompressedSize64 < declared {
			return nil, fmt.Errorf("%w: declared uncompressed sizes overflow", ErrInvalidArchive)
		}
		declared += f.UncompressedSize64
	}
	if limits.MaxUncompressed > 0 && declared > uint64(limits.MaxUncompressed) {
		return nil, fmt.Errorf("%w: declared uncompressed size %d exceeds limit of %d",
			ErrInvalidArchive, declared, limits.MaxUncompressed)
	}

	top := UnknownTopLevelDir
	if len(zr.File) > 0 {
		top = topLevelSegment(zr.File[0].Name)
	}

	return &Info{
		TopLevelDirectory: top,
		FileSize:          int64(len(data)),
	}, nil
}

// Preview re-opens a stored archive and returns the decoded text of
// every entry whose name ends in one of the allow-listed extensions,
// keyed by entry path. A matching entry that is not valid UTF-8 fails
// the whole preview with ErrNotText.
func Preview(data []byte, extensions []string) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	contents := make(map[string]string)
	for _, f := range zr.File {
		if !matchesExtension(f.Name, extensions) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %q: %v", ErrInvalidArchive, f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %q: %v", ErrInvalidArchive, f.Name, err)
		}

		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%w: %q", ErrNotText, f.Name)
		}
		contents[f.Name] = string(b)
	}

	return contents, nil
}

// topLevelSegment returns the part of an entry path before its first
// separator; entries without a separator are their own top level.
func topLevelSegment(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}

func matchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// safePath rejects absolute entry paths and paths that escape the
// archive root through ".." segments.
func safePath(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
