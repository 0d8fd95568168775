package tui

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("tui: query service is required")

// ErrMissingDocument is returned when no document fingerprint is provided.
var ErrMissingDocument = errors.New("tui: document fingerprint is required")
