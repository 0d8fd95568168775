package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/documents/lease.pdf",
			want: "/Users/test/documents/lease.pdf",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my documents/lease.pdf",
			want: "/Users/test/my documents/lease.pdf",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/Users/test/documents/lease.pdf",
			want: "/Users/test/documents/lease.pdf",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "relative/path/to/lease.pdf",
			want: "relative/path/to/lease.pdf",
		},
		{
			name: "empty string",
			uri:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}

func TestResolvePath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "inbox", "lease.pdf"), ResolvePath("~/inbox/lease.pdf"))
}

func TestReadRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("This lease is made between"), 0o600))

	req, err := ReadRequest("file://" + path)
	require.NoError(t, err)

	assert.Equal(t, "lease.txt", req.Name)
	assert.Equal(t, []byte("This lease is made between"), req.Content)
}

func TestReadRequest_Missing(t *testing.T) {
	_, err := ReadRequest(filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
