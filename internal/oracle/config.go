package oracle

// Provider represents an LLM provider
type Provider string

// Provider constants define supported oracle providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// DefaultModel is used when no model id is configured or passed.
const DefaultModel = "gemini-2.5-flash"

// Config holds the oracle configuration for the application
type Config struct {
	Provider Provider
	Model    string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultModel,
	}
}

// WithModel returns a new Config with the given model id.
func (c *Config) WithModel(model string) *Config {
	return &Config{
		Provider: c.Provider,
		Model:    model,
	}
}
