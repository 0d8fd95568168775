// Package services implements the driving port interfaces.
// Services hold the core logic (ingest, question answering, validation
// and settings) and orchestrate calls to driven ports.
package services
