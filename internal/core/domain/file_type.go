package domain

import (
	"path/filepath"
	"strings"
)

// FileType identifies the extraction format of an upload.
type FileType string

// Supported file types.
const (
	FileTypePDF     FileType = "pdf"
	FileTypeWord    FileType = "word"
	FileTypeImage   FileType = "image"
	FileTypeText    FileType = "text"
	FileTypeUnknown FileType = "unknown"
)

var extensionTypes = map[string]FileType{
	"pdf":  FileTypePDF,
	"doc":  FileTypeWord,
	"docx": FileTypeWord,
	"jpg":  FileTypeImage,
	"jpeg": FileTypeImage,
	"png":  FileTypeImage,
	"gif":  FileTypeImage,
	"bmp":  FileTypeImage,
	"tiff": FileTypeImage,
	"webp": FileTypeImage,
	"txt":  FileTypeText,
}

// FileTypeFromName determines the file type from a file name's extension.
func FileTypeFromName(name string) FileType {
	if name == "" {
		return FileTypeUnknown
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ft, ok := extensionTypes[ext]; ok {
		return ft
	}
	return FileTypeUnknown
}

// IsValid returns true if the file type is a known, extractable type.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypePDF, FileTypeWord, FileTypeImage, FileTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}
