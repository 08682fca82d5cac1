package driven

// ConfigStore provides persistent key-value configuration storage.
// Keys use dot notation (e.g. "llm.provider").
type ConfigStore interface {
	// Get retrieves a raw value and whether it exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if unset.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil if unset.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reloads configuration from the backing store.
	Load() error
}

// Prompt template names loaded through the PromptStore.
const (
	// PromptAnswerWithContext generates an answer grounded in retrieved
	// passages. Placeholders: context text, question.
	PromptAnswerWithContext = "answer_with_context"

	// PromptAnswerGeneral generates an answer from general knowledge
	// when the owner has no documents. Placeholder: question.
	PromptAnswerGeneral = "answer_general"
)

// PromptStore loads LLM prompt templates by name, typically from
// user-editable files with embedded defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
