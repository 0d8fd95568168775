// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns uploaded bytes into text
//   - NormaliserRegistry: Selects the normaliser for a file type
//   - Chunker: Splits document text into overlapping chunks
//   - DocumentCache: Memory-resident, expiring store of processed documents
//   - ConfigStore: Application configuration
//   - PromptStore: Prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Completion API. Without it, questions fail with
//     ErrLLMUnavailable and chunk refinement is skipped.
//   - PostProcessor (refinement): Without it, refined chunks equal chunks.
//   - DocumentClassifier: Without it, batch uploads are not screened.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
