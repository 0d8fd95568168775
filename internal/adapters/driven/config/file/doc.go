// Package file provides filesystem-backed driven adapters.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.lexqa/config.toml
//   - PromptStore: editable completion prompts at ~/.lexqa/prompts/
package file
