package archive_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/club-portal-api/internal/archive"
)

// buildZip assembles an in-memory ZIP from name/content pairs
func buildZip(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatalf("Write %q failed: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return buf.Bytes()
}

func TestInspect_TopLevelDirectory(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"proj1/main.py":    []byte("print('hi')\n"),
		"proj1/readme.txt": []byte("readme\n"),
	}, []string{"proj1/main.py", "proj1/readme.txt"})

	info, err := archive.Inspect(data, archive.Limits{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if info.TopLevelDirectory != "proj1" {
		t.Errorf("Expected top level 'proj1', got %q", info.TopLevelDirectory)
	}
	if info.FileSize != int64(len(data)) {
		t.Errorf("Expected file size %d, got %d", len(data), info.FileSize)
	}
}

func TestInspect_EntryWithoutSeparator(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"main.py": []byte("print('hi')\n"),
	}, []string{"main.py"})

	info, err := archive.Inspect(data, archive.Limits{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if info.TopLevelDirectory != "main.py" {
		t.Errorf("Expected 'main.py', got %q", info.TopLevelDirectory)
	}
}

func TestInspect_EmptyArchive(t *testing.T) {
	data := buildZip(t, nil, nil)

	info, err := archive.Inspect(data, archive.Limits{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if info.TopLevelDirectory != archive.UnknownTopLevelDir {
		t.Errorf("Expected %q, got %q", archive.UnknownTopLevelDir, info.TopLevelDirectory)
	}
	if info.FileSize != int64(len(data)) {
		t.Errorf("Expected file size %d, got %d", len(data), info.FileSize)
	}
}

func TestInspect_InvalidBytes(t *testing.T) {
	_, err := archive.Inspect([]byte("this is not a zip file"), archive.Limits{})
	if !errors.Is(err, archive.ErrInvalidArchive) {
		t.Errorf("Expected ErrInvalidArchive, got %v", err)
	}
}

func TestInspect_EntryLimit(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"p/a.py": []byte("a"),
		"p/b.py": []byte("b"),
		"p/c.py": []byte("c"),
	}, []string{"p/a.py", "p/b.py", "p/c.py"})

	if _, err := archive.Inspect(data, archive.Limits{MaxEntries: 2}); !errors.Is(err, archive.ErrInvalidArchive) {
		t.Errorf("Expected ErrInvalidArchive for entry count, got %v", err)
	}

	if _, err := archive.Inspect(data, archive.Limits{MaxEntries: 3}); err != nil {
		t.Errorf("Expected archive within limit to pass, got %v", err)
	}
}

func TestInspect_UncompressedSizeLimit(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"p/big.txt": bytes.Repeat([]byte("x"), 1024),
	}, []string{"p/big.txt"})

	if _, err := archive.Inspect(data, archive.Limits{MaxUncompressed: 512}); !errors.Is(err, archive.ErrInvalidArchive) {
		t.Errorf("Expected ErrInvalidArchive for size, got %v", err)
	}
}

func TestInspect_DeclaredSizeOverflow(t *testing.T) {
	// Two headers declaring 2^63 bytes each sum to zero in uint64; the
	// limit check must not be fooled by the wrap
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"p/a.bin", "p/b.bin"} {
		w, err := zw.CreateRaw(&zip.FileHeader{
			Name:               name,
			Method:             zip.Store,
			UncompressedSize64: 1 << 63,
			CompressedSize64:   4,
		})
		if err != nil {
			t.Fatalf("CreateRaw %q failed: %v", name, err)
		}
		if _, err := w.Write([]byte("data")); err != nil {
			t.Fatalf("Write %q failed: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := archive.Inspect(buf.Bytes(), archive.Limits{MaxUncompressed: 512}); !errors.Is(err, archive.ErrInvalidArchive) {
		t.Errorf("Expected ErrInvalidArchive for overflowing sizes, got %v", err)
	}
}

func TestInspect_TraversalPath(t *testing.T) {
	cases := []string{
		"../escape.py",
		"p/../../escape.py",
		"/absolute.py",
	}
	for _, name := range cases {
		data := buildZip(t, map[string][]byte{name: []byte("x")}, []string{name})
		if _, err := archive.Inspect(data, archive.Limits{}); !errors.Is(err, archive.ErrInvalidArchive) {
			t.Errorf("Expected ErrInvalidArchive for path %q, got %v", name, err)
		}
	}
}

func TestPreview_FiltersByExtension(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"a.py":  []byte("print('a')\n"),
		"b.bin": {0x00, 0x01, 0x02},
	}, []string{"a.py", "b.bin"})

	contents, err := archive.Preview(data, []string{".py", ".txt"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if len(contents) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(contents))
	}
	if contents["a.py"] != "print('a')\n" {
		t.Errorf("Unexpected content for a.py: %q", contents["a.py"])
	}
}

func TestPreview_UndecodableEntry(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"a.py":      []byte("print('a')\n"),
		"binary.py": {0xff, 0xfe, 0x00, 0x80},
	}, []string{"a.py", "binary.py"})

	_, err := archive.Preview(data, []string{".py"})
	if !errors.Is(err, archive.ErrNotText) {
		t.Errorf("Expected ErrNotText, got %v", err)
	}
}

func TestPreview_InvalidBytes(t *testing.T) {
	_, err := archive.Preview([]byte("garbage"), []string{".py"})
	if !errors.Is(err, archive.ErrInvalidArchive) {
		t.Errorf("Expected ErrInvalidArchive, got %v", err)
	}
}

func TestPreview_EmptyResult(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"image.png": {0x89, 0x50},
	}, []string{"image.png"})

	contents, err := archive.Preview(data, []string{".py"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(contents) != 0 {
		t.Errorf("Expected empty result, got %d entries", len(contents))
	}
}
