package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// ResolvePath converts a file:// URI or bare path to a local path.
// A leading "~/" expands to the home directory.
func ResolvePath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// ReadRequest reads the file at uri into an ingest request named after the
// file's base name.
func ReadRequest(uri string) (driving.IngestRequest, error) {
	path := ResolvePath(uri)
	content, err := os.ReadFile(path)
	if err != nil {
		return driving.IngestRequest{}, fmt.Errorf("read %s: %w", path, err)
	}
	return driving.IngestRequest{
		Name:    filepath.Base(path),
		Content: content,
	}, nil
}
