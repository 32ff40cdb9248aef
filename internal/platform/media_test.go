package platform

import (
	"os"
	"path/filepath"
	"testing"
)

// Smallest valid PNG signature plus IHDR chunk header
var pngHeader = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		want     string
	}{
		{"jpeg extension", "a.jpg", nil, "image/jpeg"},
		{"upper case extension", "B.PNG", nil, "image/png"},
		{"unknown extension sniffed", "scan.img2v", pngHeader, "image/png"},
		{"no extension sniffed", "README", []byte("plain words"), "text/plain"},
		{"no extension no data", "empty", nil, DefaultMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMediaType(tt.fileName, tt.data); got != tt.want {
				t.Errorf("DetectMediaType(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestReadFolder(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.png", pngHeader)
	write("a.jpg", []byte("jpeg"))
	write("notes.txt", []byte("hello"))
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	write(filepath.Join("nested", "c.jpg"), []byte("nested"))

	files, err := ReadFolder(dir)
	if err != nil {
		t.Fatalf("ReadFolder failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(files))
	}

	types := make(map[string]string)
	for _, f := range files {
		types[f.Name] = f.MediaType
		if len(f.Data) == 0 {
			t.Errorf("Expected data for %s", f.Name)
		}
	}
	if types["a.jpg"] != "image/jpeg" || types["b.png"] != "image/png" {
		t.Errorf("Unexpected image types: %v", types)
	}
	if _, ok := types["c.jpg"]; ok {
		t.Error("Nested files should not be read")
	}
}

func TestReadFolder_Missing(t *testing.T) {
	if _, err := ReadFolder(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
