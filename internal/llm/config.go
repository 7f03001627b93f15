// Package llm provides the Gemini client used for semantic similarity between
// a job description and a resume.
package llm

// ModelTier names the purpose a model is configured for
type ModelTier string

const (
	// TierEmbedding produces text embeddings for similarity
	TierEmbedding ModelTier = "embedding"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// MaxInputChars truncates each text before embedding
	MaxInputChars int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierEmbedding: "text-embedding-004",
		},
		MaxInputChars: 2000,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	return c.Models[tier]
}
