// Package file provides file-based configuration adapters.
//
// ConfigStore persists settings as TOML under the askdocs config
// directory. PromptStore serves user-editable LLM prompt templates with
// embedded defaults.
package file
