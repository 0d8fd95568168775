// Package connectors provides document sources feeding the ingest service.
// The filesystem connector resolves local paths and file:// URIs into ingest
// requests and watches a directory for new documents.
package connectors
