package domain

// RawDocument is an uploaded file before extraction.
type RawDocument struct {
	// Name is the uploaded file name. It only drives file type detection;
	// it never contributes to the fingerprint.
	Name string

	// FileType is the extraction format.
	FileType FileType

	// Content is the raw bytes.
	Content []byte
}

// NewRawDocument builds a RawDocument, detecting the file type from name.
func NewRawDocument(name string, content []byte) *RawDocument {
	return &RawDocument{
		Name:     name,
		FileType: FileTypeFromName(name),
		Content:  content,
	}
}
