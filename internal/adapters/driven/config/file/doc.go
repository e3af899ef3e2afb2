// Package file provides file-based implementations of driven port
// interfaces under ~/.carbonscore.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable LLM prompt templates
package file
