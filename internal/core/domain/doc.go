// Package domain defines the core business entities for lexqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Fingerprint: Content hash used as the document cache key
//   - CacheEntry: A processed document held by the document cache
//   - RawDocument: Uploaded bytes plus the file type tag
//   - Classification: Result of legal document-type detection
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
