package platform

import (
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/img2video/internal/model"
)

// DefaultMediaType is reported when neither extension nor content is known
const DefaultMediaType = "application/octet-stream"

// DetectMediaType returns the media type of a file from its extension,
// falling back to content sniffing when the extension is unknown
func DetectMediaType(name string, data []byte) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if mediaType := mime.TypeByExtension(ext); mediaType != "" {
			return baseMediaType(mediaType)
		}
	}

	if len(data) == 0 {
		return DefaultMediaType
	}
	return baseMediaType(mimetype.Detect(data).String())
}

// baseMediaType drops parameters such as "; charset=utf-8"
func baseMediaType(mediaType string) string {
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	return strings.TrimSpace(mediaType)
}

// ReadFolder reads the regular files directly inside dir. Subdirectories and
// unreadable files are skipped.
func ReadFolder(dir string) ([]model.RawFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]model.RawFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Skipping %s: %v", name, err)
			continue
		}

		files = append(files, model.RawFile{
			Name:      name,
			Data:      data,
			MediaType: DetectMediaType(name, data),
		})
	}

	return files, nil
}
